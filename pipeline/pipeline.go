package pipeline

import (
	"context"

	"github.com/shopstack/shoprec/core"
)

// Pipeline 是 shoprec 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 一次请求内各 Node 严格串行执行；Pipeline 自身无状态，可被并发复用。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
