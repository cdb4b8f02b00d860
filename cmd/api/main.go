package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadreach_backend/internal/auth"
	"leadreach_backend/internal/crm"
	"leadreach_backend/internal/email"
	"leadreach_backend/internal/enrichment"
	"leadreach_backend/internal/exports"
	apphttp "leadreach_backend/internal/http"
	"leadreach_backend/internal/http/router"
	"leadreach_backend/internal/leads"
	"leadreach_backend/internal/outreach"
	"leadreach_backend/internal/scheduler"
	"leadreach_backend/platform/ai/textgen"
	"leadreach_backend/platform/config"
	"leadreach_backend/platform/db"
	"leadreach_backend/platform/logger"
	"leadreach_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	rdb := initRedis(cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	enrichmentModule := enrichment.NewModule(cfg, rdb, log)

	var generator outreach.Generator
	if cfg.IsAIEnabled() {
		gemini, err := textgen.NewGeminiGenerator(ctx, textgen.Config{
			APIKey: cfg.GetGeminiAPIKey(),
			Model:  cfg.GetGeminiModel(),
		})
		if err != nil {
			log.Error("failed to initialize gemini generator", "error", err)
			panic("failed to initialize gemini generator: " + err.Error())
		}
		generator = gemini
		log.Info("ai outreach generation enabled", "model", cfg.GetGeminiModel())
	} else {
		log.Warn("GEMINI_API_KEY not configured; outreach uses templates only")
	}

	leadsModule := leads.NewModule(pool, enrichmentModule.Service(), generator, cfg.GetAITimeout(), val, log)
	authModule := auth.NewModule(pool, cfg, log, val)

	if cfg.IsEmailEnabled() {
		sender, err := email.NewSMTPSender(cfg)
		if err != nil {
			log.Error("failed to initialize email sender", "error", err)
			panic("failed to initialize email sender: " + err.Error())
		}
		leadsModule.SetDeliverer(sender)
		log.Info("outreach email delivery enabled", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("SMTP not configured; outreach delivery endpoints disabled")
	}

	bulkScheduler, closeScheduler := initScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}
	if bulkScheduler != nil {
		leadsModule.SetBulkScheduler(bulkScheduler)
	}

	crmModule, err := crm.NewModule(pool, cfg, leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize crm module", "error", err)
		panic("failed to initialize crm module: " + err.Error())
	}

	exportsModule := exports.NewModule(pool, leadsModule.Service(), val, log)
	if cfg.IsStorageEnabled() {
		archiver, err := exports.NewArchiver(cfg, log)
		if err != nil {
			log.Error("failed to initialize export archiver", "error", err)
			panic("failed to initialize export archiver: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure export bucket", 5, 2*time.Second, func() error {
			return archiver.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure export bucket exists", "error", err)
			panic("failed to ensure export bucket exists: " + err.Error())
		}
		exportsModule.SetArchiver(archiver)
		log.Info("export archiving enabled", "bucket", cfg.GetMinIOBucketExports())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			crmModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		done := make(chan struct{})
		go func() {
			exportsModule.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			log.Warn("shutdown timed out waiting for background tasks")
		}
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; enrichment cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid redis url; enrichment cache disabled", "error", err)
		return nil
	}
	return redis.NewClient(opt)
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; bulk outreach scheduling disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
