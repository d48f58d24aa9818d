package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
)

func TestGarbageCollector_Collect(t *testing.T) {
	log := logger.New("error", false)
	mem := cache.NewMemoryCache()
	ctx := context.Background()

	_ = mem.Set(ctx, "patisserie:r1:doc:short", []byte("1"), time.Minute)
	_ = mem.Set(ctx, "patisserie:r1:doc:long", []byte("2"), time.Hour)
	_ = mem.Set(ctx, "patisserie:r1:doc:forever", []byte("3"), 0)

	gc := NewGarbageCollector(mem, log, time.Hour)
	gc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	if removed := gc.Collect(); removed != 1 {
		t.Errorf("Collect() removed %d entries, want 1", removed)
	}
	if mem.Count() != 2 {
		t.Errorf("Expected 2 entries after GC, got %d", mem.Count())
	}
	if _, ok, _ := mem.Get(ctx, "patisserie:r1:doc:long"); !ok {
		t.Error("Live entry was incorrectly removed")
	}
	if _, ok, _ := mem.Get(ctx, "patisserie:r1:doc:forever"); !ok {
		t.Error("Entry without expiry was incorrectly removed")
	}
}

func TestGarbageCollector_StartStop(t *testing.T) {
	mem := cache.NewMemoryCache()
	gc := NewGarbageCollector(mem, logger.Nop(), 10*time.Millisecond)

	if err := gc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if mem.LastSweep().IsZero() {
		t.Error("Start() should sweep immediately")
	}
	gc.Stop()
}
