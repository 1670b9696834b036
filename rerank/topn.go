package rerank

import (
	"context"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于限制最终返回的候选数量。
// 推荐结果约定不超过 10 条，两条链路都在末端挂这个节点。
type TopNNode struct {
	// N 要保留的物品数量（Top N）
	// 如果 N <= 0，则默认 10
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 {
		limit = 10
	}

	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
