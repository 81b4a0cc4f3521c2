// Package cache provides a Redis-backed render store for deployments that
// share a cache between instances.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/reader-render/app/database"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "render:"
	opTimeout     = 3 * time.Second
)

var _ database.RenderStore = (*RedisStore)(nil)

// RedisStore keeps renders as JSON values. Expiry is left to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type storedRender struct {
	HTML       string    `json:"html"`
	ScriptURLs []string  `json:"script_urls"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// NewRedisStore connects to redisURL (redis://[:password@]host:port/db).
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = opTimeout
	opts.WriteTimeout = opTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) GetRender(key string) (*database.Render, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render %s: %w", key, err)
	}

	render, err := decodeRender(key, data)
	if err != nil {
		return nil, err
	}
	if render.IsExpired(time.Now()) {
		return nil, nil
	}
	return render, nil
}

func (s *RedisStore) GetRenderCount() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to count renders: %w", err)
	}
	return count, nil
}

func (s *RedisStore) SaveRender(render database.Render) error {
	ttl := time.Until(render.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := encodeRender(render)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(render.Key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save render %s: %w", render.Key, err)
	}
	return nil
}

// DeleteExpired is a no-op; Redis evicts keys when their TTL runs out.
func (s *RedisStore) DeleteExpired(now time.Time) (int64, error) {
	return 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeRender(render database.Render) ([]byte, error) {
	createdAt := render.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	scripts := render.ScriptURLs
	if scripts == nil {
		scripts = []string{}
	}

	data, err := json.Marshal(storedRender{
		HTML:       render.HTML,
		ScriptURLs: scripts,
		CreatedAt:  createdAt.UTC(),
		ExpiresAt:  render.ExpiresAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode render %s: %w", render.Key, err)
	}
	return data, nil
}

func decodeRender(key string, data []byte) (*database.Render, error) {
	var stored storedRender
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode render %s: %w", key, err)
	}

	return &database.Render{
		Key:        key,
		HTML:       stored.HTML,
		ScriptURLs: stored.ScriptURLs,
		CreatedAt:  stored.CreatedAt,
		ExpiresAt:  stored.ExpiresAt,
	}, nil
}
