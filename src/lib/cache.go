package lib

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const productCountPrefix = "products:count"

// ProductCountCache caches product list totals per filter combination.
// Write paths call Invalidate explicitly so a stale total never
// outlives the listing change that produced it.
type ProductCountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var productCountCache *ProductCountCache

func GetProductCountCache() *ProductCountCache {
	if productCountCache != nil {
		return productCountCache
	}
	productCountCache = &ProductCountCache{
		rdb: GetRedisClient(),
		ttl: 10 * time.Minute,
	}
	return productCountCache
}

func NewProductCountCache(c *redis.Client, ttl time.Duration) *ProductCountCache {
	productCountCache = &ProductCountCache{rdb: c, ttl: ttl}
	return productCountCache
}

// Key derives a deterministic cache key from the filter set. Filters
// are sorted by name so equal filter maps always share a key.
func (c *ProductCountCache) Key(filters map[string]string) string {
	if len(filters) == 0 {
		return fmt.Sprintf("%s:all", productCountPrefix)
	}
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v == "" {
			continue
		}
		keys = append(keys, fmt.Sprintf("%s=%s", k, v))
	}
	if len(keys) == 0 {
		return fmt.Sprintf("%s:all", productCountPrefix)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s:%s", productCountPrefix, strings.Join(keys, ":"))
}

func (c *ProductCountCache) Get(ctx context.Context, key string) (int64, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		log.Printf("[cache] Error reading %s: %s\n", key, err.Error())
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *ProductCountCache) Set(ctx context.Context, key string, count int64) {
	if err := c.rdb.Set(ctx, key, count, c.ttl).Err(); err != nil {
		log.Printf("[cache] Error writing %s: %s\n", key, err.Error())
	}
}

// Invalidate drops every cached count. Called whenever a product is
// created, updated or deleted.
func (c *ProductCountCache) Invalidate(ctx context.Context) {
	keys, err := c.rdb.Keys(ctx, fmt.Sprintf("%s*", productCountPrefix)).Result()
	if err != nil {
		log.Printf("[cache] Error listing keys: %s\n", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] Error invalidating: %s\n", err.Error())
	}
}
