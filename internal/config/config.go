package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, repository calls included

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Content repository
	APIURL             string        // entry point of the repository API (ex: https://shop.cdn.example.io/api)
	AccessToken        string        // optional, sent as access_token
	APITimeout         time.Duration // timeout of a single repository HTTP call
	APIRetries         int           // attempts per repository call (1 = no retry)
	APIRetryDelay      time.Duration // initial backoff between attempts
	APIPageSize        int           // documents per search page
	RefRefreshInterval time.Duration // how often the master ref is refreshed

	// Site
	PublicURL  string // optional, absolute base of generated links; derived from the request when empty
	RoutesFile string // optional, YAML routing table; built-in routes when empty

	// Cache
	CacheTTL   time.Duration // lifetime of cached repository responses
	GCInterval time.Duration // sweep interval of the in-memory cache

	// Redis (optional shared cache tier, disabled when RedisAddr is empty)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Search rate limiting (per client IP)
	SearchBurst        int
	SearchRefillPerMin int

	AllowedHosts []string // optional, restrict pages to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-* headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PATISSERIE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PATISSERIE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("PATISSERIE_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("PATISSERIE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PATISSERIE_PRETTY_LOG", true),

		// Content repository
		APIURL:             requireURL("PATISSERIE_API_URL"),
		AccessToken:        getenv("PATISSERIE_ACCESS_TOKEN", ""),
		APITimeout:         mustDuration("PATISSERIE_API_TIMEOUT", 3*time.Second),
		APIRetries:         getenvInt("PATISSERIE_API_RETRIES", 3),
		APIRetryDelay:      mustDuration("PATISSERIE_API_RETRY_DELAY", 200*time.Millisecond),
		APIPageSize:        getenvInt("PATISSERIE_API_PAGE_SIZE", 100),
		RefRefreshInterval: mustDuration("PATISSERIE_REF_REFRESH_INTERVAL", 30*time.Second),

		// Site
		PublicURL:  optionalURL("PATISSERIE_PUBLIC_URL"),
		RoutesFile: getenv("PATISSERIE_ROUTES_FILE", ""),

		// Cache
		CacheTTL:   mustDuration("PATISSERIE_CACHE_TTL", 10*time.Minute),
		GCInterval: mustDuration("PATISSERIE_GC_INTERVAL", time.Minute),

		// Redis settings
		RedisAddr:           getenv("PATISSERIE_REDIS_ADDR", ""),
		RedisUser:           getenv("PATISSERIE_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("PATISSERIE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PATISSERIE_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Search
		SearchBurst:        getenvInt("PATISSERIE_SEARCH_BURST", 20),
		SearchRefillPerMin: getenvInt("PATISSERIE_SEARCH_REFILL_PER_MIN", 60),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("PATISSERIE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("PATISSERIE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PATISSERIE_TRUST_PROXY", true),
	}

	if cfg.APIRetries < 1 {
		panic(fmt.Sprintf("❌ FATAL: PATISSERIE_API_RETRIES must be >= 1, got %d", cfg.APIRetries))
	}
	if cfg.APIPageSize < 1 || cfg.APIPageSize > 100 {
		panic(fmt.Sprintf("❌ FATAL: PATISSERIE_API_PAGE_SIZE must be within 1..100, got %d", cfg.APIPageSize))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = redact(cfg.RedisPassword)
		cfgCopy.AccessToken = redact(cfg.AccessToken)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether the shared cache tier is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// requireURL reads an absolute http(s) URL and strips its trailing slash.
func requireURL(key string) string {
	v := requireEnv(key)
	if err := validateURL(v); err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid URL for %s: %v", key, err))
	}
	return strings.TrimSuffix(v, "/")
}

func optionalURL(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if err := validateURL(v); err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid URL for %s: %v", key, err))
	}
	return strings.TrimSuffix(v, "/")
}

func validateURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
