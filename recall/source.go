package recall

import (
	"context"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pipeline"
)

// Source 表示一个可复用的召回源（内容相似/用户协同过滤/...）。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// SourceNode 把一个 Source 适配成 Pipeline Node：
// 忽略输入 items，产出召回候选集。
type SourceNode struct {
	Source Source
}

func (n *SourceNode) Name() string {
	return n.Source.Name()
}

func (n *SourceNode) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (n *SourceNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return n.Source.Recall(ctx, rctx)
}
