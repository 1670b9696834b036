package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/service"
	"github.com/shopstack/shoprec/store"
)

// countingCatalog 统计 FindAll 次数，用来验证缓存命中后不再回源。
type countingCatalog struct {
	core.CatalogStore
	findAllCalls atomic.Int64
}

func (c *countingCatalog) FindAll(ctx context.Context) ([]core.Product, error) {
	c.findAllCalls.Add(1)
	return c.CatalogStore.FindAll(ctx)
}

func fixtureRecommender() (*service.Recommender, *countingCatalog) {
	catalog := &countingCatalog{CatalogStore: store.NewMemoryCatalogStore([]core.Product{
		{ID: "1", Title: "red shoe", Categories: []string{"shoes"}, Price: 50},
		{ID: "2", Title: "red hat", Categories: []string{"hats"}, Price: 20},
		{ID: "3", Title: "blue shoe", Categories: []string{"shoes"}, Price: 55},
		{ID: "4", Title: "green tea", Categories: []string{"grocery"}, Price: 5},
	})}

	orders := store.NewMemoryOrderStore([]core.Transaction{
		{ID: "t1", UserID: "u1", Lines: []core.TransactionLine{{ProductID: "1", Quantity: 1}, {ProductID: "2", Quantity: 1}}},
		{ID: "t2", UserID: "u2", Lines: []core.TransactionLine{{ProductID: "1", Quantity: 1}, {ProductID: "2", Quantity: 1}, {ProductID: "3", Quantity: 1}}},
		{ID: "t3", UserID: "u3", Lines: []core.TransactionLine{{ProductID: "4", Quantity: 1}}},
	})
	favorites := store.NewMemoryFavoriteStore(nil)

	kv := store.NewMemoryStore()
	rec := &service.Recommender{
		Catalog:   catalog,
		Orders:    orders,
		Favorites: favorites,
		Cache:     service.NewRecommendationCache(kv, time.Minute),
	}
	return rec, catalog
}

func TestRecommendProducts(t *testing.T) {
	rec, _ := fixtureRecommender()

	recs, err := rec.RecommendProducts(context.Background(), "1")
	if err != nil {
		t.Fatalf("RecommendProducts() error = %v", err)
	}

	if len(recs) == 0 || len(recs) > 10 {
		t.Fatalf("got %d recommendations, want 1..10", len(recs))
	}
	for _, r := range recs {
		if r.Product.ID == "1" {
			t.Error("query product leaked into its own recommendations")
		}
	}
	// 同类目的 blue shoe 排最前
	if recs[0].Product.ID != "3" {
		t.Errorf("top recommendation = %s, want 3", recs[0].Product.ID)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Similarity > recs[i-1].Similarity {
			t.Error("recommendations must be sorted by similarity, descending")
		}
	}
}

func TestRecommendProductsNotFound(t *testing.T) {
	rec, _ := fixtureRecommender()
	_, err := rec.RecommendProducts(context.Background(), "missing")
	if !core.IsNotFound(err) {
		t.Fatalf("err = %v, want NOT_FOUND domain error", err)
	}
}

func TestRecommendProductsCacheHit(t *testing.T) {
	rec, catalog := fixtureRecommender()
	ctx := context.Background()

	first, err := rec.RecommendProducts(ctx, "1")
	if err != nil {
		t.Fatalf("RecommendProducts() error = %v", err)
	}
	callsAfterFirst := catalog.findAllCalls.Load()

	second, err := rec.RecommendProducts(ctx, "1")
	if err != nil {
		t.Fatalf("RecommendProducts() error = %v", err)
	}

	if catalog.findAllCalls.Load() != callsAfterFirst {
		t.Error("second identical request must be served from cache without a catalog read")
	}
	if len(first) != len(second) {
		t.Errorf("cached result length %d != %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Product.ID != second[i].Product.ID || first[i].Similarity != second[i].Similarity {
			t.Errorf("cached result diverges at %d", i)
		}
	}
}

func TestRecommendForUser(t *testing.T) {
	rec, _ := fixtureRecommender()

	recs, err := rec.RecommendForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	// u2 是唯一有效邻居，贡献 u1 没接触过的 3；u3 零重叠，4 绝不能出现
	if len(recs) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(recs))
	}
	if recs[0].ID != "3" {
		t.Errorf("suggested %s, want 3", recs[0].ID)
	}
	if recs[0].Score != 1.0 {
		t.Errorf("top suggestion score = %f, want exactly 1.0 after normalization", recs[0].Score)
	}
	if recs[0].Title != "blue shoe" {
		t.Errorf("suggestion must carry the full product record, got title %q", recs[0].Title)
	}
}

func TestRecommendForUserNoHistory(t *testing.T) {
	rec, _ := fixtureRecommender()

	recs, err := rec.RecommendForUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("user with no history: got %d suggestions, want 0", len(recs))
	}
}

// 打分和装配之间商品被删除：该候选静默消失，其余结果保持归一化不变量。
func TestRecommendForUserDeletedProduct(t *testing.T) {
	catalog := store.NewMemoryCatalogStore([]core.Product{
		{ID: "1", Title: "red shoe"},
		{ID: "2", Title: "red hat"},
		// 3 不在目录里：u2 的交互指向了已删除的商品
	})
	orders := store.NewMemoryOrderStore([]core.Transaction{
		{UserID: "u1", Lines: []core.TransactionLine{{ProductID: "1"}}},
		{UserID: "u2", Lines: []core.TransactionLine{{ProductID: "1"}, {ProductID: "2"}, {ProductID: "3"}}},
	})
	rec := &service.Recommender{
		Catalog:   catalog,
		Orders:    orders,
		Favorites: store.NewMemoryFavoriteStore(nil),
	}

	recs, err := rec.RecommendForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if len(recs) != 1 {
		t.Fatalf("got %d suggestions, want 1 (deleted product dropped silently)", len(recs))
	}
	if recs[0].ID != "2" {
		t.Errorf("suggested %s, want 2", recs[0].ID)
	}
	if recs[0].Score != 1.0 {
		t.Errorf("surviving top suggestion score = %f, want 1.0", recs[0].Score)
	}
}

func TestRecommenderWithoutCache(t *testing.T) {
	rec, _ := fixtureRecommender()
	rec.Cache = nil // 缓存是旁路：没有缓存也必须完整工作

	if _, err := rec.RecommendProducts(context.Background(), "1"); err != nil {
		t.Fatalf("RecommendProducts() without cache: error = %v", err)
	}
	if _, err := rec.RecommendForUser(context.Background(), "u1"); err != nil {
		t.Fatalf("RecommendForUser() without cache: error = %v", err)
	}
}
