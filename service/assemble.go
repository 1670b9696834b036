package service

import (
	"context"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pipeline"
)

// JoinProductsNode 是结果装配节点：把 (商品 ID, 分数) 候选关联回完整的
// 商品记录。目录只批量读一次，内存里完成 join，不做逐条回源查询。
//
// 关联不上的候选（打分和查询之间商品被删了）静默丢弃，
// 不往下游传半截记录。丢弃发生在归一化之前，所以非空结果的
// 最高分恒为 1.0。
type JoinProductsNode struct {
	Catalog core.CatalogStore
}

func (n *JoinProductsNode) Name() string {
	return "postprocess.join_products"
}

func (n *JoinProductsNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *JoinProductsNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	// 召回源可能已经带上了商品记录（内容链路），全带齐就不回源
	missing := false
	for _, it := range items {
		if it.Product == nil {
			missing = true
			break
		}
	}
	if !missing {
		return items, nil
	}

	products, err := n.Catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*core.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			p, ok := byID[it.ID]
			if !ok {
				continue // 商品已不存在，静默丢弃
			}
			it.Product = p
		}
		out = append(out, it)
	}

	return out, nil
}
