package rerank

import (
	"context"
	"testing"

	"github.com/shopstack/shoprec/core"
)

func scored(pairs ...any) []*core.Item {
	items := make([]*core.Item, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		it := core.NewItem(pairs[i].(string))
		it.Score = pairs[i+1].(float64)
		items = append(items, it)
	}
	return items
}

func TestNormalizeNode(t *testing.T) {
	node := &NormalizeNode{}
	items, err := node.Process(context.Background(), nil, scored("a", 4.0, "b", 2.0, "c", 1.0))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if items[0].Score != 1.0 {
		t.Errorf("top score = %f, want exactly 1.0", items[0].Score)
	}
	for _, it := range items {
		if it.Score <= 0 || it.Score > 1 {
			t.Errorf("score(%s) = %f, want in (0, 1]", it.ID, it.Score)
		}
	}
	if items[1].Score != 0.5 || items[2].Score != 0.25 {
		t.Errorf("scores = [%f %f %f], want [1 0.5 0.25]",
			items[0].Score, items[1].Score, items[2].Score)
	}
}

func TestNormalizeNodeEmptyInput(t *testing.T) {
	// 零候选必须在做除法之前被拦下
	node := &NormalizeNode{}
	items, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}

func TestNormalizeNodeZeroMax(t *testing.T) {
	node := &NormalizeNode{}
	items, err := node.Process(context.Background(), nil, scored("a", 0.0, "b", 0.0))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("max score 0: got %d items, want empty result", len(items))
	}
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		count int
		want  int
	}{
		{"truncates", 3, 5, 3},
		{"fewer than n", 10, 4, 4},
		{"default caps at 10", 0, 15, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]*core.Item, 0, tt.count)
			for i := 0; i < tt.count; i++ {
				items = append(items, core.NewItem("p"))
			}

			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d items, want %d", len(got), tt.want)
			}
		})
	}
}
