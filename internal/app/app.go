package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pudu/heartgate/internal/config"
	"github.com/pudu/heartgate/internal/content"
	"github.com/pudu/heartgate/internal/httpserver"
	"github.com/pudu/heartgate/internal/httpserver/deps"
	"github.com/pudu/heartgate/internal/logger"
	"github.com/pudu/heartgate/internal/redis"
	"github.com/pudu/heartgate/internal/storage"
	fsbackend "github.com/pudu/heartgate/internal/storage/fs"
	membackend "github.com/pudu/heartgate/internal/storage/memory"
	redisbackend "github.com/pudu/heartgate/internal/storage/redis"
	s3backend "github.com/pudu/heartgate/internal/storage/s3"
	"github.com/pudu/heartgate/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	backend, redisClient, err := buildBackend(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to initialize %s storage backend: %v", cfg.StorageBackend, err)
		os.Exit(1)
	}
	loggerClient.Info("storage backend initialized",
		logger.String("backend", cfg.StorageBackend))

	contentService := content.NewService(backend, loggerClient)

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		Content:            contentService,
		Backend:            backend,
		GridSize:           cfg.GridSize,
		UnlockTTL:          cfg.UnlockTTL,
		AdminCIDRS:         cfg.AdminCIDRS,
		AllowedHosts:       cfg.AllowedHosts,
		TrustProxy:         cfg.TrustProxy,
		UploadBurst:        cfg.UploadBurst,
		UploadRefillPerMin: cfg.UploadRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

// buildBackend constructs the storage backend named by the configuration.
// The selection is always explicit; nothing is inferred from the
// environment's shape.
func buildBackend(cfg *config.Config, log logger.Logger) (storage.Backend, *goredis.Client, error) {
	switch cfg.StorageBackend {
	case config.BackendFS:
		b, err := fsbackend.New(cfg.DataDir)
		return b, nil, err

	case config.BackendS3:
		b, err := s3backend.New(context.Background(), s3backend.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		return b, nil, err

	case config.BackendRedis:
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return redisbackend.New(client), client, nil

	case config.BackendMemory:
		log.Warn("memory backend selected, nothing will survive a restart")
		return membackend.New(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting heartgate %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("heartgate %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("✅ heartgate stopped cleanly")
	return nil
}
