package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shopstack/shoprec/pipeline"
)

// Config 是服务的应用配置（YAML）。
//
// 示例：
//
//	server:
//	  addr: ":8080"
//	redis:
//	  addr: "127.0.0.1:6379"
//	  db: 0
//	cache:
//	  ttl_seconds: 600
//	recommend:
//	  top_n: 10
//	  neighbor_k: 10
//	  nodes:
//	    - type: filter.rule
//	      config:
//	        rule: 'product.price <= 5000.0'
//	seed: "./seed.yaml"
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Redis struct {
		// Addr 为空表示不用 Redis，缓存退化为进程内存
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`

	Recommend struct {
		TopN      int `yaml:"top_n"`
		NeighborK int `yaml:"neighbor_k"`

		// Nodes 是配置下发的业务节点（filter.rule / rerank.* 等），
		// 插在两条链路的召回/装配之后
		Nodes []pipeline.NodeConfig `yaml:"nodes"`
	} `yaml:"recommend"`

	// Seed 是内存协作方存储的种子数据文件路径（开发/演示环境）
	Seed string `yaml:"seed"`
}

// Load 从 YAML 文件加载配置并补默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回全默认值配置。
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 600 // 10 分钟
	}
	if c.Recommend.TopN <= 0 {
		c.Recommend.TopN = 10
	}
	if c.Recommend.NeighborK <= 0 {
		c.Recommend.NeighborK = 10
	}
}
