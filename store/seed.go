package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shopstack/shoprec/core"
)

// SeedData 是内存存储的种子数据（开发/演示环境从 YAML 文件加载）。
type SeedData struct {
	Products     []core.Product          `yaml:"products"`
	Transactions []core.Transaction      `yaml:"transactions"`
	Preferences  []core.PreferenceSignal `yaml:"preferences"`
}

// LoadSeed 从 YAML 文件加载种子数据。
func LoadSeed(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}

	return &seed, nil
}

// Stores 把种子数据装进三个内存协作方存储。
func (s *SeedData) Stores() (*MemoryCatalogStore, *MemoryOrderStore, *MemoryFavoriteStore) {
	return NewMemoryCatalogStore(s.Products),
		NewMemoryOrderStore(s.Transactions),
		NewMemoryFavoriteStore(s.Preferences)
}
