package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloshop/storefront/internal/port"
)

const (
	stockKeyPrefix    = "stock:"
	cartKeyPrefix     = "cart:"
	idempotencyKeyTTL = 24 * time.Hour
)

var decrementStockScript = redis.NewScript(`
local key = KEYS[1]
local quantity = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return 0
end

current = tonumber(current)
if current >= quantity then
	redis.call('DECRBY', key, quantity)
	return 1
end

return 0
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func stockKey(productID int64) string {
	return fmt.Sprintf("%s%d", stockKeyPrefix, productID)
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID int64) (int, bool, error) {
	stock, err := r.client.Get(ctx, stockKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stock, true, nil
}

func (r *RedisAdapter) SetStock(ctx context.Context, productID int64, quantity int) error {
	return r.client.Set(ctx, stockKey(productID), quantity, 0).Err()
}

func (r *RedisAdapter) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	result, err := decrementStockScript.Run(ctx, r.client, []string{stockKey(productID)}, quantity).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (r *RedisAdapter) IncrementStock(ctx context.Context, productID int64, quantity int) error {
	return r.client.IncrBy(ctx, stockKey(productID), int64(quantity)).Err()
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *RedisAdapter) GetCart(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, cartKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", port.ErrCartNotStored
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *RedisAdapter) SaveCart(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, cartKeyPrefix+key, value, 0).Err()
}

func (r *RedisAdapter) DeleteCart(ctx context.Context, key string) error {
	return r.client.Del(ctx, cartKeyPrefix+key).Err()
}
