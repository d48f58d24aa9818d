package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/metrics"
	"github.com/MrSnakeDoc/patisserie/internal/predicate"
)

// Cached is a read-through cache in front of a repository. Results are
// stored per (ref, id) or (ref, form, query); absence is cached too.
// Cache failures never fail a call: the repository is asked directly.
type Cached struct {
	next         domain.Repository
	cache        cache.Cache
	ttl          time.Duration
	fetchTimeout time.Duration // bound of a shared fetch, detached from callers
	group        singleflight.Group
	recorder     *metrics.Recorder
	log          logger.Logger
}

var _ domain.Repository = (*Cached)(nil)

const defaultSharedFetchTimeout = 30 * time.Second

func NewCached(next domain.Repository, c cache.Cache, ttl time.Duration, recorder *metrics.Recorder, log logger.Logger) *Cached {
	if log == nil {
		log = logger.Nop()
	}
	return &Cached{
		next:         next,
		cache:        c,
		ttl:          ttl,
		fetchTimeout: defaultSharedFetchTimeout,
		recorder:     recorder,
		log:          log,
	}
}

func (c *Cached) Document(ctx context.Context, id string, release domain.Release) (*domain.Document, error) {
	return load(ctx, c, "document", documentKey(release.Ref, id), func(ctx context.Context) (*domain.Document, error) {
		return c.next.Document(ctx, id, release)
	})
}

func (c *Cached) Documents(ctx context.Context, ids []string, release domain.Release) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return []*domain.Document{}, nil
	}
	docs, err := load(ctx, c, "documents", documentsKey(release.Ref, ids), func(ctx context.Context) ([]*domain.Document, error) {
		return c.next.Documents(ctx, ids, release)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(docs), nil
}

func (c *Cached) Query(ctx context.Context, form string, q predicate.Query, release domain.Release) ([]*domain.Document, error) {
	built, err := q.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	docs, err := load(ctx, c, "query", queryKey(release.Ref, form, built), func(ctx context.Context) ([]*domain.Document, error) {
		return c.next.Query(ctx, form, q, release)
	})
	if err != nil {
		return nil, err
	}
	// Callers sort result pages in place.
	return slices.Clone(docs), nil
}

type bookmarkEntry struct {
	ID string `json:"id"`
	OK bool   `json:"ok"`
}

func (c *Cached) BookmarkTargetID(ctx context.Context, name string, release domain.Release) (string, bool, error) {
	e, err := load(ctx, c, "bookmark", bookmarkKey(release.Ref, name), func(ctx context.Context) (bookmarkEntry, error) {
		id, ok, err := c.next.BookmarkTargetID(ctx, name, release)
		return bookmarkEntry{ID: id, OK: ok}, err
	})
	if err != nil {
		return "", false, err
	}
	return e.ID, e.OK, nil
}

// load serves key from the cache or fetches it once for every concurrent
// caller asking for the same key.
func load[T any](ctx context.Context, c *Cached, kind, key string, fetch func(context.Context) (T, error)) (T, error) {
	raw, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
	case ok:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			c.recorder.IncCacheLookup(kind, true)
			return v, nil
		}
		c.log.Warn("discarding corrupt cache entry", logger.String("key", key))
	}
	c.recorder.IncCacheLookup(kind, false)

	// The shared fetch outlives any single caller: one aborted request must
	// not fail the others waiting on the same key.
	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(v); err == nil {
			if err := c.cache.Set(fctx, key, raw, c.ttl); err != nil {
				c.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
			}
		}
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
