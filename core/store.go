package core

import "context"

// 协作方存储接口统一定义在 core 包，具体实现在 store 包（或业务侧自行提供）。
// 推荐核心对所有协作方数据只读；每次请求都基于当前快照重建语料/矩阵。

// ErrStoreNotFound 是存储层统一的 "key/记录不存在" 错误。
var ErrStoreNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "store: not found")

// TransactionLine 是订单中的一个条目。
// Quantity 只做记录，不参与交互打分（交互矩阵里是二值存在信号）。
type TransactionLine struct {
	ProductID string `json:"productId" yaml:"productId"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
}

// Transaction 是一笔历史订单。UserID 为空表示游客单，协同过滤会跳过。
type Transaction struct {
	ID     string            `json:"id" yaml:"id"`
	UserID string            `json:"userId" yaml:"userId"`
	Lines  []TransactionLine `json:"products" yaml:"products"`
}

// PreferenceSignal 是一个用户的显式偏好信号（收藏/点赞的商品集合）。
type PreferenceSignal struct {
	UserID     string   `json:"userId" yaml:"userId"`
	ProductIDs []string `json:"productsId" yaml:"productsId"`
}

// CatalogStore 是商品目录的只读接口。
// FindAll 的返回顺序即语料顺序：同分 tie-break 依赖这个顺序保持稳定。
type CatalogStore interface {
	FindAll(ctx context.Context) ([]Product, error)
	// FindByID 未命中时返回 ErrStoreNotFound（或等价的 NOT_FOUND DomainError）
	FindByID(ctx context.Context, id string) (*Product, error)
}

// OrderStore 是历史订单的只读接口（只投影 userId + products）。
type OrderStore interface {
	FindAll(ctx context.Context) ([]Transaction, error)
}

// FavoriteStore 是偏好信号的只读接口（只投影 userId + productsId）。
type FavoriteStore interface {
	FindAll(ctx context.Context) ([]PreferenceSignal, error)
}

// KeyValueStore 是带 TTL 的 KV 存储接口，用于推荐结果的旁路缓存。
// 缓存只是加速器：Get/Set 失败不允许影响请求正确性。
type KeyValueStore interface {
	Name() string

	// Get 未命中时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入，ttl 单位秒（可选参数，缺省表示不过期）
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	Delete(ctx context.Context, key string) error
	Close() error
}
