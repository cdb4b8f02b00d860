package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadreach_backend/internal/crm"
	"leadreach_backend/internal/email"
	"leadreach_backend/internal/enrichment"
	"leadreach_backend/internal/leads"
	"leadreach_backend/internal/scheduler"
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

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var rdb *redis.Client
	if cfg.GetRedisURL() != "" {
		if opt, err := redis.ParseURL(cfg.GetRedisURL()); err == nil {
			rdb = redis.NewClient(opt)
			defer func() { _ = rdb.Close() }()
		}
	}

	val := validator.New()

	// Worker-side wiring: the worker composes outreach with templates only,
	// so no AI generator is attached here.
	enrichmentModule := enrichment.NewModule(cfg, rdb, log)
	leadsModule := leads.NewModule(pool, enrichmentModule.Service(), nil, 0, val, log)

	worker, err := scheduler.NewWorker(cfg, leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if cfg.IsEmailEnabled() {
		sender, err := email.NewSMTPSender(cfg)
		if err != nil {
			log.Error("failed to initialize email sender", "error", err)
			panic("failed to initialize email sender: " + err.Error())
		}
		worker.SetDeliverer(sender)
	} else {
		log.Warn("SMTP not configured; bulk outreach tasks will be skipped")
	}

	crmModule, err := crm.NewModule(pool, cfg, leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize crm module", "error", err)
		panic("failed to initialize crm module: " + err.Error())
	}
	worker.SetCRMService(crmModule.Service())

	worker.Run(ctx)
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
