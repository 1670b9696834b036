package filter

import (
	"context"
	"testing"

	"github.com/shopstack/shoprec/core"
)

func candidate(id string, price float64, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	it.Product = &core.Product{ID: id, Title: "x", Categories: []string{"misc"}, Price: price}
	return it
}

func TestRuleFilter(t *testing.T) {
	tests := []struct {
		name       string
		rule       string
		item       *core.Item
		wantFilter bool
	}{
		{
			name:       "empty rule keeps everything",
			rule:       "",
			item:       candidate("p1", 9999, 0),
			wantFilter: false,
		},
		{
			name:       "price ceiling keeps cheap item",
			rule:       "product.price <= 500.0",
			item:       candidate("p1", 100, 0.5),
			wantFilter: false,
		},
		{
			name:       "price ceiling drops expensive item",
			rule:       "product.price <= 500.0",
			item:       candidate("p2", 900, 0.9),
			wantFilter: true,
		},
		{
			name:       "score threshold",
			rule:       "item.score > 0.3",
			item:       candidate("p3", 10, 0.1),
			wantFilter: true,
		},
	}

	rctx := &core.RecommendContext{UserID: "u1"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &RuleFilter{Rule: tt.rule}
			got, err := f.ShouldFilter(context.Background(), rctx, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.wantFilter {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.wantFilter)
			}
		})
	}
}

func TestFilterNode(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&RuleFilter{Rule: "product.price <= 500.0"}}}

	items := []*core.Item{
		candidate("cheap", 100, 0.9),
		candidate("pricey", 900, 0.8),
		candidate("mid", 400, 0.7),
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	if out[0].ID != "cheap" || out[1].ID != "mid" {
		t.Errorf("kept [%s %s], want [cheap mid]", out[0].ID, out[1].ID)
	}

	// 被过滤的候选带上原因标签
	if lbl, ok := items[1].Labels["filtered"]; !ok || lbl.Source != "filter.rule" {
		t.Error("filtered item must carry the filter reason label")
	}
}

func TestFilterNodeNoFilters(t *testing.T) {
	node := &FilterNode{}
	items := []*core.Item{candidate("p1", 1, 1)}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatal("no filters configured: items must pass through")
	}
}
