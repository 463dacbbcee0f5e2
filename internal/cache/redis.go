package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/triple-tgg/sams-sub001/internal/config"
)

const (
	FlightListKey = "cache:flights:list"
	OptionSetKey  = "cache:masterdata:options"
)

// Cache wraps the Redis client with the JSON get/set/delete operations the
// portal needs: short-TTL master-data options and the flight-list cache
// that upload invalidates.
type Cache struct {
	client *redis.Client
}

func New(cfg *config.Config) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: rdb}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// GetJSON unmarshals the cached value into dest; ok=false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateFlightList satisfies the importer's FlightCache dependency.
func (c *Cache) InvalidateFlightList(ctx context.Context) error {
	return c.Delete(ctx, FlightListKey)
}
