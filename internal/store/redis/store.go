package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
)

// Store is the shared cache tier backed by Redis.
type Store struct {
	client *redis.Client
}

var _ cache.Cache = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Get retrieves a cached value, (nil, false, nil) on a miss
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached value: %w", err)
	}
	return data, true, nil
}

// Set stores a value with a TTL
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache value: %w", err)
	}
	return nil
}

// FlushRef removes every entry cached for one ref
func (s *Store) FlushRef(ctx context.Context, ref string) (int, error) {
	return s.flush(ctx, escapeGlob(cache.RefPrefix(ref))+"*")
}

// Flush removes every entry owned by the service
func (s *Store) Flush(ctx context.Context) (int, error) {
	return s.flush(ctx, cache.KeyPrefix+"*")
}

func (s *Store) flush(ctx context.Context, match string) (int, error) {
	deleted := 0
	iter := s.client.Scan(ctx, 0, match, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete cache key: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to flush cache: %w", err)
	}
	return deleted, nil
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// escapeGlob quotes the SCAN MATCH metacharacters of s.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
