package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/shopstack/shoprec/core"
)

type fakeNode struct {
	name string
	fn   func(items []*core.Item) ([]*core.Item, error)
}

func (n *fakeNode) Name() string { return n.name }
func (n *fakeNode) Kind() Kind   { return KindReRank }
func (n *fakeNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func TestPipelineRunsNodesInOrder(t *testing.T) {
	var order []string
	mk := func(name string) Node {
		return &fakeNode{name: name, fn: func(items []*core.Item) ([]*core.Item, error) {
			order = append(order, name)
			return append(items, core.NewItem(name)), nil
		}}
	}

	p := &Pipeline{Nodes: []Node{mk("a"), mk("b"), mk("c")}}
	items, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("execution order = %v, want [a b c]", order)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	p := &Pipeline{Nodes: []Node{
		&fakeNode{name: "fail", fn: func([]*core.Item) ([]*core.Item, error) { return nil, boom }},
		&fakeNode{name: "after", fn: func(items []*core.Item) ([]*core.Item, error) {
			ran = true
			return items, nil
		}},
	}}

	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if ran {
		t.Error("nodes after a failing node must not run")
	}
}

func TestNodeFactory(t *testing.T) {
	factory := NewNodeFactory()
	factory.Register("noop", func(cfg map[string]any) (Node, error) {
		return &fakeNode{name: "noop", fn: func(items []*core.Item) ([]*core.Item, error) {
			return items, nil
		}}, nil
	})

	if _, err := factory.Build("noop", nil); err != nil {
		t.Fatalf("Build(noop) error = %v", err)
	}
	if _, err := factory.Build("unknown", nil); err == nil {
		t.Fatal("Build(unknown) must fail")
	}
}
