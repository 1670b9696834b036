package filter

import (
	"context"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pkg/dsl"
)

// RuleFilter 用 CEL 表达式描述"保留"条件：表达式为 false 的候选被剔除。
// 运营可以在配置里下发规则（价格上限、类目黑名单等），不用改代码。
//
// 示例：
//   - `product.price <= 500.0`
//   - `!("clearance" in product.categories)`
//   - `label.recall_source == "content" || item.score > 0.3`
type RuleFilter struct {
	// Rule 为空表示不过滤任何候选
	Rule string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Rule == "" {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Rule)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
