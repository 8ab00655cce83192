// Package redis 提供商品详情的 Redis 读缓存。
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/freshmall/internal/goods/domain"
)

type SKURedisRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSKURedisRepository 创建基于 Redis 的商品读缓存
func NewSKURedisRepository(client redis.UniversalClient) *SKURedisRepository {
	return &SKURedisRepository{
		client: client,
		prefix: "goods:sku:",
		ttl:    time.Hour,
	}
}

func (r *SKURedisRepository) key(skuID uint64) string {
	return fmt.Sprintf("%s%d", r.prefix, skuID)
}

func (r *SKURedisRepository) Save(ctx context.Context, sku *domain.GoodsSKU) error {
	if sku == nil {
		return nil
	}
	data, err := json.Marshal(sku)
	if err != nil {
		return fmt.Errorf("failed to marshal sku: %w", err)
	}
	return r.client.Set(ctx, r.key(uint64(sku.ID)), data, r.ttl).Err()
}

func (r *SKURedisRepository) Get(ctx context.Context, skuID uint64) (*domain.GoodsSKU, error) {
	data, err := r.client.Get(ctx, r.key(skuID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sku from redis: %w", err)
	}
	var sku domain.GoodsSKU
	if err := json.Unmarshal(data, &sku); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sku: %w", err)
	}
	return &sku, nil
}

// Invalidate 库存或价格变更后使缓存失效
func (r *SKURedisRepository) Invalidate(ctx context.Context, skuID uint64) error {
	return r.client.Del(ctx, r.key(skuID)).Err()
}
