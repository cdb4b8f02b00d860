// Package enrichment provides the composition root for lead enrichment.
package enrichment

import (
	"leadreach_backend/internal/enrichment/client"
	"leadreach_backend/internal/enrichment/service"
	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module wires the enrichment client, cache and service.
type Module struct {
	service *service.Service
}

// NewModule creates a new enrichment module. The Redis client may be nil,
// which disables caching.
func NewModule(cfg config.EnrichmentConfig, rdb *redis.Client, log *logger.Logger) *Module {
	cli := client.New(cfg, log)
	cache := service.NewCache(rdb, cfg.GetEnrichmentCacheTTL(), log)
	svc := service.New(cli, cache, log)
	return &Module{service: svc}
}

// Service returns the enrichment service.
func (m *Module) Service() *service.Service {
	return m.service
}
