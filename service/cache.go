package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/shoprec/core"
)

// CacheKeyKind 标记缓存键所属的推荐链路。
type CacheKeyKind string

const (
	CacheKeyContent       CacheKeyKind = "products" // 内容推荐：按查询商品缓存
	CacheKeyCollaborative CacheKeyKind = "users"    // 协同过滤：按目标用户缓存
)

// CacheKey 是类型化的缓存键：链路 + 主体 ID。
// 不再用裸字符串拼接散落在调用点，键空间一眼可枚举。
type CacheKey struct {
	Kind CacheKeyKind
	ID   string
}

func (k CacheKey) String() string {
	return "recommendations/" + string(k.Kind) + "/" + k.ID
}

// DefaultCacheTTL 是两条链路共用的缓存时长。
const DefaultCacheTTL = 10 * time.Minute

// RecommendationCache 是推荐结果的旁路缓存，注入 KeyValueStore 实现
// （生产用 Redis，测试用内存）。缓存只是加速器：任何 Get/Set 错误都
// 降级为未命中/不写入，绝不影响请求正确性。
type RecommendationCache struct {
	Store core.KeyValueStore

	// TTL <= 0 时使用 DefaultCacheTTL
	TTL time.Duration

	// Logger 可选；缓存读写异常只记 debug 日志
	Logger *zerolog.Logger
}

func NewRecommendationCache(store core.KeyValueStore, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{Store: store, TTL: ttl}
}

func (c *RecommendationCache) ttlSeconds() int {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return int(ttl / time.Second)
}

func (c *RecommendationCache) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// GetProducts 读取内容推荐缓存；未命中或解码失败返回 (nil, false)。
func (c *RecommendationCache) GetProducts(ctx context.Context, productID string) ([]ProductRecommendation, bool) {
	var out []ProductRecommendation
	if !c.get(ctx, CacheKey{Kind: CacheKeyContent, ID: productID}, &out) {
		return nil, false
	}
	return out, true
}

// PutProducts 写入内容推荐缓存。
func (c *RecommendationCache) PutProducts(ctx context.Context, productID string, recs []ProductRecommendation) {
	c.put(ctx, CacheKey{Kind: CacheKeyContent, ID: productID}, recs)
}

// GetSuggestions 读取协同过滤推荐缓存。
func (c *RecommendationCache) GetSuggestions(ctx context.Context, userID string) ([]SuggestedProduct, bool) {
	var out []SuggestedProduct
	if !c.get(ctx, CacheKey{Kind: CacheKeyCollaborative, ID: userID}, &out) {
		return nil, false
	}
	return out, true
}

// PutSuggestions 写入协同过滤推荐缓存。
func (c *RecommendationCache) PutSuggestions(ctx context.Context, userID string, recs []SuggestedProduct) {
	c.put(ctx, CacheKey{Kind: CacheKeyCollaborative, ID: userID}, recs)
}

func (c *RecommendationCache) get(ctx context.Context, key CacheKey, out any) bool {
	if c == nil || c.Store == nil {
		return false
	}

	data, err := c.Store.Get(ctx, key.String())
	if err != nil {
		if !core.IsNotFound(err) {
			c.logger().Debug().Err(err).Str("key", key.String()).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger().Debug().Err(err).Str("key", key.String()).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (c *RecommendationCache) put(ctx context.Context, key CacheKey, value any) {
	if c == nil || c.Store == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger().Debug().Err(err).Str("key", key.String()).Msg("cache encode failed")
		return
	}
	if err := c.Store.Set(ctx, key.String(), data, c.ttlSeconds()); err != nil {
		c.logger().Debug().Err(err).Str("key", key.String()).Msg("cache put failed")
	}
}
