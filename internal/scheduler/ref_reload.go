package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/metrics"
)

// RefTracker keeps the master ref of the repository in memory so that
// unpinned requests do not fetch the entry every time. It implements
// domain.RefSource.
type RefTracker struct {
	source        domain.RefSource
	recorder      *metrics.Recorder
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}

	mu          sync.RWMutex
	current     string
	lastRefresh time.Time
}

// NewRefTracker creates a new ref tracker
func NewRefTracker(
	source domain.RefSource,
	recorder *metrics.Recorder,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *RefTracker {
	return &RefTracker{
		source:        source,
		recorder:      recorder,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the master ref and refreshes it periodically and on every
// manual trigger. A failed initial load is not fatal: MasterRef retries
// on demand.
func (rt *RefTracker) Start(ctx context.Context) error {
	if err := rt.Refresh(ctx); err != nil {
		rt.logger.Warn("initial master ref refresh failed", logger.Error(err))
	}

	ticker := time.NewTicker(rt.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := rt.Refresh(ctx); err != nil {
					rt.logger.Error("failed to refresh master ref",
						logger.Error(err))
				}
			case <-rt.manualTrigger:
				rt.logger.Info("manual master ref refresh triggered")
				if err := rt.Refresh(ctx); err != nil {
					rt.logger.Error("failed to refresh master ref",
						logger.Error(err))
				}
			case <-rt.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the tracker
func (rt *RefTracker) Stop() {
	rt.stopOnce.Do(func() { close(rt.stopCh) })
}

// Refresh asks the repository for its master ref
func (rt *RefTracker) Refresh(ctx context.Context) error {
	ref, err := rt.source.MasterRef(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch master ref: %w", err)
	}

	rt.mu.Lock()
	previous := rt.current
	rt.current = ref
	rt.lastRefresh = time.Now()
	rt.mu.Unlock()

	switch {
	case previous == "":
		rt.logger.Info("master ref loaded", logger.String("ref", ref))
	case previous != ref:
		rt.recorder.IncRefChange()
		rt.logger.Info("master ref changed",
			logger.String("previous", previous),
			logger.String("ref", ref))
	default:
		rt.logger.Debug("master ref unchanged", logger.String("ref", ref))
	}
	return nil
}

// MasterRef returns the tracked ref, refreshing synchronously when none has
// been loaded yet.
func (rt *RefTracker) MasterRef(ctx context.Context) (string, error) {
	if ref := rt.Current(); ref != "" {
		return ref, nil
	}
	if err := rt.Refresh(ctx); err != nil {
		return "", err
	}
	return rt.Current(), nil
}

// Current returns the tracked ref, "" before the first successful refresh
func (rt *RefTracker) Current() string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.current
}

// LastRefresh returns the time of the last successful refresh
func (rt *RefTracker) LastRefresh() time.Time {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.lastRefresh
}
