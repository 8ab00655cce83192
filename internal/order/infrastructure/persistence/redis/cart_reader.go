// Package redis 提供结算所需购物车读取端口的 Redis 实现。
// 购物车是按买家维护的哈希：key cart:<user id>，field 为 sku id，value 为数量。
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/freshmall/internal/order/domain"
)

type cartReader struct {
	client redis.UniversalClient
}

// NewCartReader 创建购物车读取实例
func NewCartReader(client redis.UniversalClient) domain.CartReader {
	return &cartReader{client: client}
}

func cartKey(userID uint64) string {
	return fmt.Sprintf("cart:%d", userID)
}

// GetQuantity 读取买家购物车内某商品的数量
func (r *cartReader) GetQuantity(ctx context.Context, userID, skuID uint64) (int, bool, error) {
	val, err := r.client.HGet(ctx, cartKey(userID), strconv.FormatUint(skuID, 10)).Result()
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

// Remove 删除买家购物车内指定商品的记录
func (r *cartReader) Remove(ctx context.Context, userID uint64, skuIDs []uint64) error {
	if len(skuIDs) == 0 {
		return nil
	}
	fields := make([]string, len(skuIDs))
	for i, id := range skuIDs {
		fields[i] = strconv.FormatUint(id, 10)
	}
	if err := r.client.HDel(ctx, cartKey(userID), fields...).Err(); err != nil {
		return fmt.Errorf("failed to remove cart lines: %w", err)
	}
	return nil
}
