// Package shoprec 是一个电商推荐服务（Shop Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - 快照式计算: 语料与交互矩阵每次请求从协作方只读快照重建，无共享可变状态
// - Labels-first: labels 全链路透传，支持 explain / 观测 / 规则驱动过滤
//
// 两条链路：
//   - 内容推荐: TF-IDF 向量化 + 余弦相似度（recall.ContentRecall）
//   - 协同过滤: 交互矩阵 + TopK 邻居加权聚合（recall.UserBasedCF）
package shoprec

import "github.com/shopstack/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
