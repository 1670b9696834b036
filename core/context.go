package core

import "github.com/shopstack/shoprec/pkg/utils"

// RecommendContext 承载一次推荐请求的主体信息，贯穿整个 Pipeline 透传。
//
// 两条链路二选一：
//   - 内容推荐：ProductID 为查询商品
//   - 协同过滤：UserID 为目标用户
type RecommendContext struct {
	UserID    string // 目标用户 ID（协同过滤链路）
	ProductID string // 查询商品 ID（内容推荐链路）
	Scene     string

	// Labels 是请求级标签，可驱动 Pipeline 行为（例如灰度、人群包）
	Labels map[string]utils.Label

	// Params 请求级上下文参数（价格上限、渠道、AB 分组等），
	// 供 filter 规则表达式引用
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
