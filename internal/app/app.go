package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
	"github.com/MrSnakeDoc/patisserie/internal/config"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver"
	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/metrics"
	"github.com/MrSnakeDoc/patisserie/internal/redis"
	"github.com/MrSnakeDoc/patisserie/internal/repository"
	"github.com/MrSnakeDoc/patisserie/internal/scheduler"
	"github.com/MrSnakeDoc/patisserie/internal/sources/routing"
	redisstore "github.com/MrSnakeDoc/patisserie/internal/store/redis"
	"github.com/MrSnakeDoc/patisserie/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	refs        *scheduler.RefTracker
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	recorder := metrics.NewRecorder()

	site, err := routing.Load(cfg.RoutesFile)
	if err != nil {
		loggerClient.Errorf("Failed to load routes: %v", err)
		os.Exit(1)
	}
	if cfg.RoutesFile != "" {
		loggerClient.Info("routes loaded", logger.String("file", cfg.RoutesFile))
	}

	memCache := cache.NewMemoryCache()
	var responseCache cache.Cache = memCache

	// Redis is an optional shared tier; when configured, fail fast if unavailable
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")

		store = redisstore.NewStore(redisClient)
		responseCache = cache.NewTiered(memCache, store)
	} else {
		loggerClient.Info("redis not configured, caching in memory only")
	}

	client := repository.New(repository.Options{
		APIURL:      cfg.APIURL,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.APITimeout,
		Attempts:    cfg.APIRetries,
		RetryDelay:  cfg.APIRetryDelay,
		PageSize:    cfg.APIPageSize,
		Recorder:    recorder,
		Logger:      loggerClient,
	})
	repo := repository.NewCached(client, responseCache, cfg.CacheTTL, recorder, loggerClient)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	refs := scheduler.NewRefTracker(
		client,
		recorder,
		loggerClient,
		cfg.RefRefreshInterval,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		memCache,
		loggerClient,
		cfg.GCInterval,
	)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		PublicURL:      cfg.PublicURL,
		Repository:     repo,
		RepositoryPing: client.Ping,
		Refs:           refs,
		Site:           site,
		MemoryCache:    memCache,
		RedisStore:     store,
		Metrics:        recorder,
		ReloadTrigger:  reloadTrigger,
		SearchBurst:    cfg.SearchBurst,
		SearchRefill:   cfg.SearchRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		refs:        refs,
		gc:          gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Patisserie v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Patisserie %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start ref tracker (loads the master ref and refreshes it periodically)
	if err := a.refs.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ref tracker: %w", err)
	}
	a.logger.Info("ref tracker started",
		logger.String("master_ref", a.refs.Current()),
		logger.Duration("interval", a.cfg.RefRefreshInterval))

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refs.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Patisserie stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
