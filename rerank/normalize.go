package rerank

import (
	"context"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pipeline"
)

// NormalizeNode 把候选分数除以最大分，归一化到 (0, 1]：
// 头部推荐恒为 1.0，下游展示层不需要理解原始累积分的量纲。
//
// 空候选集或最大分 <= 0 时直接返回空结果——这里必须先判空再做除法，
// 否则零候选会触发除零。
type NormalizeNode struct{}

func (n *NormalizeNode) Name() string {
	return "rerank.normalize"
}

func (n *NormalizeNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *NormalizeNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var max float64
	for _, it := range items {
		if it.Score > max {
			max = it.Score
		}
	}
	if max <= 0 {
		return nil, nil
	}

	for _, it := range items {
		it.Score /= max
	}
	return items, nil
}
