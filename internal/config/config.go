package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names accepted in HEARTGATE_STORAGE_BACKEND.
const (
	BackendFS     = "fs"
	BackendS3     = "s3"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Storage backend selection is always explicit, never inferred from
	// what happens to be present on disk.
	StorageBackend string // "fs" | "s3" | "redis" | "memory"
	DataDir        string // base directory for the fs backend

	GridSize  int           // puzzle grid dimension N (N x N tiles)
	UnlockTTL time.Duration // unlock cookie lifetime

	// S3 backend (any S3-compatible endpoint, e.g. MinIO)
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // optional custom endpoint; empty = AWS default
	S3AccessKey string
	S3SecretKey string

	// Redis backend
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on wait between retries
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int

	// Access restrictions for the admin surface (mutating content routes).
	AdminCIDRS   []string // empty = no filtering (single-tenant default)
	AllowedHosts []string // optional Host header allowlist
	TrustProxy   bool     // trust X-Forwarded-For and friends

	// Upload rate limiting
	UploadBurst        int
	UploadRefillPerMin int
}

// Load builds the configuration from the environment, with an optional YAML
// file (HEARTGATE_CONFIG_FILE) supplying defaults for unset variables.
func Load() *Config {
	file := loadFileValues(os.Getenv("HEARTGATE_CONFIG_FILE"))
	env := &resolver{file: file}

	cfg := &Config{
		ListenPort:      env.str("HEARTGATE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: env.duration("HEARTGATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  env.str("HEARTGATE_LOG_LEVEL", "info"),
		PrettyLog: env.boolean("HEARTGATE_PRETTY_LOG", true),

		StorageBackend: env.str("HEARTGATE_STORAGE_BACKEND", BackendFS),
		DataDir:        env.str("HEARTGATE_DATA_DIR", "./uploads"),

		GridSize:  env.num("HEARTGATE_GRID_SIZE", 3),
		UnlockTTL: env.duration("HEARTGATE_UNLOCK_TTL", 24*time.Hour),

		S3Bucket:    env.str("HEARTGATE_S3_BUCKET", ""),
		S3Region:    env.str("HEARTGATE_S3_REGION", "us-east-1"),
		S3Endpoint:  env.str("HEARTGATE_S3_ENDPOINT", ""),
		S3AccessKey: env.str("HEARTGATE_S3_ACCESS_KEY", ""),
		S3SecretKey: env.str("HEARTGATE_S3_SECRET_KEY", ""),

		RedisAddr:           env.str("HEARTGATE_REDIS_ADDR", "localhost:6379"),
		RedisUser:           env.str("HEARTGATE_REDIS_USERNAME", ""),
		RedisPassword:       env.str("HEARTGATE_REDIS_PASSWORD", ""),
		RedisDB:             env.num("HEARTGATE_REDIS_DB", 0),
		RedisDialTimeout:    env.duration("HEARTGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    env.duration("HEARTGATE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   env.duration("HEARTGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       env.num("HEARTGATE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: env.duration("HEARTGATE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  env.duration("HEARTGATE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        env.duration("HEARTGATE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    env.duration("HEARTGATE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  env.num("HEARTGATE_REDIS_WARN_THRESHOLD", 3),

		AdminCIDRS:   splitAndTrim(env.str("HEARTGATE_ADMIN_CIDRS", "")),
		AllowedHosts: splitAndTrim(env.str("HEARTGATE_ALLOWED_HOSTS", "")),
		TrustProxy:   env.boolean("HEARTGATE_TRUST_PROXY", false),

		UploadBurst:        env.num("HEARTGATE_UPLOAD_BURST", 10),
		UploadRefillPerMin: env.num("HEARTGATE_UPLOAD_REFILL_PER_MIN", 30),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid configuration: %v", err))
	}

	return cfg
}

// Validate checks cross-field constraints that the per-key helpers can't.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFS, BackendRedis, BackendMemory:
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("HEARTGATE_S3_BUCKET is required when the s3 backend is selected")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want fs, s3, redis or memory)", c.StorageBackend)
	}
	if c.GridSize < 2 {
		return fmt.Errorf("grid size must be at least 2, got %d", c.GridSize)
	}
	if c.UnlockTTL <= 0 {
		return fmt.Errorf("unlock TTL must be positive, got %v", c.UnlockTTL)
	}
	return nil
}

// resolver looks a key up in the environment first, then in the optional
// config file, then falls back to the default.
type resolver struct {
	file map[string]string
}

func (r *resolver) raw(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return r.file[key]
}

func (r *resolver) str(key, def string) string {
	if v := r.raw(key); v != "" {
		return v
	}
	return def
}

func (r *resolver) num(key string, def int) int {
	if v := r.raw(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (r *resolver) boolean(key string, def bool) bool {
	if v := r.raw(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (r *resolver) duration(key string, def time.Duration) time.Duration {
	if v := r.raw(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
