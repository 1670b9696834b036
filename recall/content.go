package recall

import (
	"context"
	"sort"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pkg/utils"
)

// ErrQueryProductNotFound 表示查询商品不在当前目录快照中。
// 上层应把它映射为 404 类结果，而不是内部错误。
var ErrQueryProductNotFound = core.NewDomainError(
	core.ModuleRecall, core.ErrorCodeNotFound, "recall: query product not found in catalog")

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："标题/类目文本相似的商品，相互可替代"
//
// 算法流程：
//  1. 取目录全量商品，标题+类目归一化成 token 序列
//  2. 以整个目录为语料训练 TF-IDF 向量化器
//  3. 计算查询商品与其余商品的余弦相似度
//  4. 按相似度降序取 TopK
//
// 自我排除按商品 ID 比较，而不是 similarity == 1 的浮点判等：
// 两个内容完全相同的不同商品会恰好打出 1.0，浮点误差也可能让
// 查询商品自身偏离 1.0，判等两个方向都会出错。
type ContentRecall struct {
	Store core.CatalogStore

	// TopK 返回 TopK 个商品，<= 0 时默认 10
	TopK int
}

func (r *ContentRecall) Name() string {
	return "recall.content"
}

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || rctx == nil || rctx.ProductID == "" {
		return nil, nil
	}

	// 一次性批量拉取目录；FindAll 的顺序就是语料顺序与 tie-break 顺序
	products, err := r.Store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	queryIdx := -1
	for i := range products {
		if products[i].ID == rctx.ProductID {
			queryIdx = i
			break
		}
	}
	if queryIdx == -1 {
		return nil, ErrQueryProductNotFound
	}

	// 空目录或单品目录：没有可推荐对象
	if len(products) <= 1 {
		return nil, nil
	}

	docs := make([][]string, len(products))
	for i := range products {
		docs[i] = ProductDocument(products[i].Title, products[i].Categories)
	}

	vectorizer := FitVectorizer(docs)
	queryVec := vectorizer.Transform(docs[queryIdx])

	type scoredProduct struct {
		idx   int
		score float64
	}
	scores := make([]scoredProduct, 0, len(products)-1)

	for i := range products {
		if i == queryIdx {
			continue // 按 ID（下标）排除查询商品自身
		}
		score := Cosine(queryVec, vectorizer.Transform(docs[i]))
		scores = append(scores, scoredProduct{idx: i, score: score})
	}

	// 稳定排序：同分保持目录迭代顺序，重复调用结果一致
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 10
	}
	if len(scores) > topK {
		scores = scores[:topK]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		p := products[s.idx]
		it := core.NewItem(p.ID)
		it.Score = s.score
		it.Product = &p
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}

	return out, nil
}
