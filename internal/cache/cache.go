package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"minimart/internal/model"
)

// productTTL bounds the staleness of catalog reads served from redis.
const productTTL = 5 * time.Minute

// Client is a redis-backed product cache that fails safe by swallowing
// connectivity errors. Catalog reads fall back to the database when redis is
// unavailable, and a nil *Client behaves as an always-cold cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns the cached product, or nil on a miss, a decode failure,
// or when redis is unavailable.
func (c *Client) GetProduct(ctx context.Context, id uint) *model.Product {
	data := c.get(ctx, productKey(id))
	if data == nil {
		return nil
	}
	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil
	}
	return &product
}

// SetProduct caches a product for productTTL.
func (c *Client) SetProduct(ctx context.Context, product *model.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	c.set(ctx, productKey(product.ID), payload, productTTL)
}

// InvalidateProduct drops the cached product. Called after catalog mutations
// and after cart adds change the stock.
func (c *Client) InvalidateProduct(ctx context.Context, id uint) {
	c.del(ctx, productKey(id))
}

func (c *Client) get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both behave like a miss
		return nil
	}
	return res
}

func (c *Client) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Client) del(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}
