package judge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores judge verdicts keyed by question-payload hash so a re-run does
// not pay for LLM calls over unchanged sets. Implementations are best-effort:
// a miss or a storage failure just means the set is judged again.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
}

func cacheKey(grade int, payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("currikit:judge:g%d:%s", grade, hex.EncodeToString(sum[:]))
}

// RedisCache backs Cache with a Redis instance.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, val []byte) {
	c.client.Set(ctx, key, val, c.ttl)
}

func (c *RedisCache) Close() error { return c.client.Close() }

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
