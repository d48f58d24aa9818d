package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
)

// GarbageCollector periodically drops expired entries of the memory cache.
// Expired entries are already invisible to readers; sweeping bounds memory.
type GarbageCollector struct {
	cache    *cache.MemoryCache
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	c *cache.MemoryCache,
	log logger.Logger,
	interval time.Duration,
) *GarbageCollector {
	return &GarbageCollector{
		cache:    c,
		logger:   log,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	gc.Collect()

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect()
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect sweeps expired entries and returns how many were removed
func (gc *GarbageCollector) Collect() int {
	removed := gc.cache.Sweep(gc.now())

	if removed > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("entries_deleted", removed),
			logger.Int("entries_left", gc.cache.Count()))
	} else {
		gc.logger.Debug("no cache entries to garbage collect")
	}

	return removed
}
