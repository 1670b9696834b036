package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pipeline"
	"github.com/shopstack/shoprec/recall"
	"github.com/shopstack/shoprec/rerank"
)

// ProductRecommendation 是内容推荐的一条结果：{ product, similarity }。
type ProductRecommendation struct {
	Product    core.Product `json:"product"`
	Similarity float64      `json:"similarity"`
}

// SuggestedProduct 是协同过滤推荐的一条结果：商品字段内联 + 归一化分数。
type SuggestedProduct struct {
	core.Product
	Score float64 `json:"score"`
}

// Recommender 是两条推荐链路的编排器。
//
// 每次请求都是一次独立的无状态计算：语料/交互矩阵从协作方快照现建现用，
// 请求之间没有共享可变状态，天然支持并发。挂起点只有协作方读取与缓存读写，
// 取消/超时通过 ctx 在这些点生效；纯内存计算段一旦开始就跑到结束。
type Recommender struct {
	Catalog   core.CatalogStore
	Orders    core.OrderStore
	Favorites core.FavoriteStore

	// Cache 可选；为 nil 时每次请求都重新计算
	Cache *RecommendationCache

	// TopN 两条链路的结果上限，<= 0 时默认 10
	TopN int

	// NeighborK 协同过滤参与聚合的邻居数，<= 0 时默认 10
	NeighborK int

	// ExtraNodes 插在召回/装配之后、归一化/截断之前的业务节点
	// （通常是配置下发的 filter.rule），对两条链路同时生效
	ExtraNodes []pipeline.Node

	// Logger 可选
	Logger *zerolog.Logger
}

func (r *Recommender) logger() *zerolog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

func (r *Recommender) topN() int {
	if r.TopN <= 0 {
		return 10
	}
	return r.TopN
}

// RecommendProducts 执行内容推荐链路：
// 归一化 -> TF-IDF 向量化 -> 余弦排序 -> 过滤 -> 截断。
// 查询商品不在目录中时返回 NOT_FOUND 领域错误。
func (r *Recommender) RecommendProducts(ctx context.Context, productID string) ([]ProductRecommendation, error) {
	if cached, ok := r.Cache.GetProducts(ctx, productID); ok {
		r.logger().Debug().Str("product_id", productID).Msg("content recommendations served from cache")
		return cached, nil
	}

	nodes := []pipeline.Node{
		&recall.SourceNode{Source: &recall.ContentRecall{
			Store: r.Catalog,
			TopK:  r.topN(),
		}},
	}
	nodes = append(nodes, r.ExtraNodes...)
	nodes = append(nodes, &rerank.TopNNode{N: r.topN()})

	rctx := &core.RecommendContext{
		ProductID: productID,
		Scene:     "recommendations.products",
	}

	items, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]ProductRecommendation, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, ProductRecommendation{
			Product:    *it.Product,
			Similarity: it.Score,
		})
	}

	r.Cache.PutProducts(ctx, productID, out)
	r.logger().Debug().Str("product_id", productID).Int("count", len(out)).
		Msg("content recommendations computed")
	return out, nil
}

// RecommendForUser 执行协同过滤链路：
// 交互矩阵 -> 邻居选择与加权聚合 -> 商品装配 -> 过滤 -> 归一化 -> 截断。
// 无历史用户得到空列表，不算错误。
func (r *Recommender) RecommendForUser(ctx context.Context, userID string) ([]SuggestedProduct, error) {
	if cached, ok := r.Cache.GetSuggestions(ctx, userID); ok {
		r.logger().Debug().Str("user_id", userID).Msg("user recommendations served from cache")
		return cached, nil
	}

	nodes := []pipeline.Node{
		&recall.SourceNode{Source: &recall.UserBasedCF{
			Orders:           r.Orders,
			Favorites:        r.Favorites,
			TopKSimilarUsers: r.neighborK(),
		}},
		// 先装配再归一化：期间被删掉的商品不会让非空结果的最高分跌破 1.0
		&JoinProductsNode{Catalog: r.Catalog},
	}
	nodes = append(nodes, r.ExtraNodes...)
	nodes = append(nodes,
		&rerank.NormalizeNode{},
		&rerank.TopNNode{N: r.topN()},
	)

	rctx := &core.RecommendContext{
		UserID: userID,
		Scene:  "recommendations.users",
	}

	items, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]SuggestedProduct, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, SuggestedProduct{
			Product: *it.Product,
			Score:   it.Score,
		})
	}

	r.Cache.PutSuggestions(ctx, userID, out)
	r.logger().Debug().Str("user_id", userID).Int("count", len(out)).
		Msg("user recommendations computed")
	return out, nil
}

func (r *Recommender) neighborK() int {
	if r.NeighborK <= 0 {
		return 10
	}
	return r.NeighborK
}
