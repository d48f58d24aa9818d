// Package cache holds the read-through cache tiers used in front of the
// content repository. Keys are opaque to the cache; callers embed the
// release ref in every key so that snapshots never mix.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Tiered reads the front tier first, then the back tier, refilling the
// front tier on a back hit. Writes go to both tiers.
type Tiered struct {
	front Cache
	back  Cache
}

// NewTiered composes two tiers, typically memory in front of redis.
func NewTiered(front, back Cache) *Tiered {
	return &Tiered{front: front, back: back}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok, err := t.front.Get(ctx, key); err == nil && ok {
		return v, true, nil
	}

	v, ok, err := t.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	// Front tier has no TTL knowledge of the back entry; keep it short.
	_ = t.front.Set(ctx, key, v, backfillTTL)
	return v, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := t.front.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return t.back.Set(ctx, key, value, ttl)
}

const backfillTTL = time.Minute
