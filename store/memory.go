package store

import (
	"context"
	"sync"
	"time"

	"github.com/shopstack/shoprec/core"
)

// MemoryStore 是内存实现的 KeyValueStore，用于测试/开发/原型。
// 支持 TTL（过期时间），但进程重启后数据丢失。
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]*entry
	clean *time.Ticker
	done  chan struct{}
}

type entry struct {
	value  []byte
	expire *time.Time
}

func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		data:  make(map[string]*entry),
		clean: time.NewTicker(10 * time.Second),
		done:  make(chan struct{}),
	}
	go ms.cleanup()
	return ms
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	if e.expire != nil && time.Now().After(*e.expire) {
		return nil, core.ErrStoreNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &entry{value: value}
	if len(ttl) > 0 && ttl[0] > 0 {
		expire := time.Now().Add(time.Duration(ttl[0]) * time.Second)
		e.expire = &expire
	}
	m.data[key] = e
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error {
	m.clean.Stop()
	close(m.done)
	return nil
}

func (m *MemoryStore) cleanup() {
	for {
		select {
		case <-m.done:
			return
		case <-m.clean.C:
			m.mu.Lock()
			now := time.Now()
			for k, e := range m.data {
				if e.expire != nil && now.After(*e.expire) {
					delete(m.data, k)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ core.KeyValueStore = (*MemoryStore)(nil)

// MemoryCatalogStore 是内存实现的商品目录，用于测试/开发。
// FindAll 返回拷贝且保持写入顺序（语料顺序与 tie-break 依赖它）。
type MemoryCatalogStore struct {
	mu       sync.RWMutex
	products []core.Product
	index    map[string]int
}

func NewMemoryCatalogStore(products []core.Product) *MemoryCatalogStore {
	s := &MemoryCatalogStore{index: make(map[string]int, len(products))}
	for _, p := range products {
		s.put(p)
	}
	return s
}

func (s *MemoryCatalogStore) put(p core.Product) {
	if idx, ok := s.index[p.ID]; ok {
		s.products[idx] = p
		return
	}
	s.index[p.ID] = len(s.products)
	s.products = append(s.products, p)
}

// Put 新增或覆盖一条商品记录。
func (s *MemoryCatalogStore) Put(p core.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(p)
}

func (s *MemoryCatalogStore) FindAll(ctx context.Context) ([]core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryCatalogStore) FindByID(ctx context.Context, id string) (*core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	p := s.products[idx]
	return &p, nil
}

var _ core.CatalogStore = (*MemoryCatalogStore)(nil)

// MemoryOrderStore 是内存实现的订单只读投影。
type MemoryOrderStore struct {
	mu           sync.RWMutex
	transactions []core.Transaction
}

func NewMemoryOrderStore(transactions []core.Transaction) *MemoryOrderStore {
	return &MemoryOrderStore{transactions: transactions}
}

// Append 追加一笔订单（测试/演示用）。
func (s *MemoryOrderStore) Append(tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
}

func (s *MemoryOrderStore) FindAll(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

var _ core.OrderStore = (*MemoryOrderStore)(nil)

// MemoryFavoriteStore 是内存实现的偏好信号只读投影。
type MemoryFavoriteStore struct {
	mu          sync.RWMutex
	preferences []core.PreferenceSignal
}

func NewMemoryFavoriteStore(preferences []core.PreferenceSignal) *MemoryFavoriteStore {
	return &MemoryFavoriteStore{preferences: preferences}
}

// Append 追加一条偏好信号（测试/演示用）。
func (s *MemoryFavoriteStore) Append(pref core.PreferenceSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = append(s.preferences, pref)
}

func (s *MemoryFavoriteStore) FindAll(ctx context.Context) ([]core.PreferenceSignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.PreferenceSignal, len(s.preferences))
	copy(out, s.preferences)
	return out, nil
}

var _ core.FavoriteStore = (*MemoryFavoriteStore)(nil)
