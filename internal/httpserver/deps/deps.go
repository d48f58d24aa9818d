package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/metrics"
	"github.com/MrSnakeDoc/patisserie/internal/scheduler"
	"github.com/MrSnakeDoc/patisserie/internal/sources/routing"
	redisstore "github.com/MrSnakeDoc/patisserie/internal/store/redis"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time            // for testing, defaults to time.Now
	AllowedHosts   []string                    // Host headers allowed to access the pages
	AllowedCIDRS   []string                    // IPs allowed to access ops endpoints
	TrustProxy     bool                        // true if running behind a trusted reverse proxy (e.g., cloudflared)
	PublicURL      string                      // Absolute base of generated links, derived from the request when empty
	Repository     domain.Repository           // Content repository, cached
	RepositoryPing func(context.Context) error // Reachability check of the repository
	Refs           *scheduler.RefTracker       // Master ref of the repository
	Site           *routing.Site               // Routes and listing vocabulary
	MemoryCache    *cache.MemoryCache          // In-process cache tier
	RedisStore     *redisstore.Store           // Shared cache tier, nil when disabled
	Metrics        *metrics.Recorder           // nil disables instrumentation
	ReloadTrigger  chan struct{}               // Channel to trigger a manual master ref refresh
	SearchBurst    int                         // Search rate limit burst per client IP
	SearchRefill   int                         // Search tokens refilled per client IP per minute
}
