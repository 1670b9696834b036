package core

import "github.com/shopstack/shoprec/pkg/utils"

// Product 是商品目录中的一条记录（由 CatalogStore 持有，推荐核心只读不写）。
// Categories 以文本 token 的形式参与内容向量化。
type Product struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Categories []string `json:"categories" yaml:"categories"`
	Price      float64  `json:"price" yaml:"price"`
}

// Item 是推荐链路中的统一承载结构：候选 ID、分数、已关联的商品记录、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
// Product 在结果装配（join）之前可以为 nil。
type Item struct {
	ID      string
	Score   float64
	Product *Product
	Labels  map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
