// Package redis 提供购物车仓储接口的 Redis 实现。
// key 形如 cart:<user id>，field 为 sku id，value 为数量。
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/freshmall/internal/cart/domain"
)

type cartRepository struct {
	client redis.UniversalClient
}

// NewCartRepository 创建购物车仓储实例
func NewCartRepository(client redis.UniversalClient) domain.CartRepository {
	return &cartRepository{client: client}
}

func cartKey(userID uint64) string {
	return fmt.Sprintf("cart:%d", userID)
}

func skuField(skuID uint64) string {
	return strconv.FormatUint(skuID, 10)
}

func (r *cartRepository) GetQuantity(ctx context.Context, userID, skuID uint64) (int, bool, error) {
	val, err := r.client.HGet(ctx, cartKey(userID), skuField(skuID)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get cart quantity: %w", err)
	}
	qty, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("invalid cart quantity %q: %w", val, err)
	}
	return qty, true, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, skuID uint64, qty int) error {
	if err := r.client.HSet(ctx, cartKey(userID), skuField(skuID), qty).Err(); err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	return nil
}

func (r *cartRepository) IncrQuantity(ctx context.Context, userID, skuID uint64, delta int) (int, error) {
	val, err := r.client.HIncrBy(ctx, cartKey(userID), skuField(skuID), int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to incr cart quantity: %w", err)
	}
	return int(val), nil
}

func (r *cartRepository) Remove(ctx context.Context, userID uint64, skuIDs []uint64) error {
	if len(skuIDs) == 0 {
		return nil
	}
	fields := make([]string, len(skuIDs))
	for i, id := range skuIDs {
		fields[i] = skuField(id)
	}
	if err := r.client.HDel(ctx, cartKey(userID), fields...).Err(); err != nil {
		return fmt.Errorf("failed to remove cart lines: %w", err)
	}
	return nil
}

func (r *cartRepository) Snapshot(ctx context.Context, userID uint64) (map[uint64]int, error) {
	raw, err := r.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	lines := make(map[uint64]int, len(raw))
	for field, val := range raw {
		skuID, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cart field %q: %w", field, err)
		}
		qty, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid cart quantity %q: %w", val, err)
		}
		lines[skuID] = qty
	}
	return lines, nil
}

func (r *cartRepository) Count(ctx context.Context, userID uint64) (int64, error) {
	n, err := r.client.HLen(ctx, cartKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return n, nil
}
