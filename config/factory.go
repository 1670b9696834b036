package config

import (
	"github.com/shopstack/shoprec/filter"
	"github.com/shopstack/shoprec/pipeline"
	"github.com/shopstack/shoprec/pkg/conv"
	"github.com/shopstack/shoprec/rerank"
)

// DefaultFactory 返回一个包含所有可配置 Node 的默认工厂。
// 召回节点不在这里注册：它们依赖协作方存储实例，由 service 层直接组装。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// Filter Nodes
	factory.Register("filter.rule", buildRuleFilterNode)

	// ReRank Nodes
	factory.Register("rerank.topn", buildTopNNode)
	factory.Register("rerank.normalize", buildNormalizeNode)

	return factory
}

func buildRuleFilterNode(cfg map[string]any) (pipeline.Node, error) {
	rule := conv.ConfigGet[string](cfg, "rule", "")
	return &filter.FilterNode{
		Filters: []filter.Filter{&filter.RuleFilter{Rule: rule}},
	}, nil
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	return &rerank.TopNNode{N: int(n)}, nil
}

func buildNormalizeNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.NormalizeNode{}, nil
}

// BuildNodes 根据配置构建业务节点列表。
func BuildNodes(nodes []pipeline.NodeConfig) ([]pipeline.Node, error) {
	factory := DefaultFactory()
	out := make([]pipeline.Node, 0, len(nodes))
	for _, nc := range nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}
