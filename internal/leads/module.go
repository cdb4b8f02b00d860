// Package leads provides the lead pipeline bounded context module.
package leads

import (
	"math/rand"
	"time"

	enrichsvc "leadreach_backend/internal/enrichment/service"
	apphttp "leadreach_backend/internal/http"
	"leadreach_backend/internal/leads/handler"
	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/internal/leads/service"
	"leadreach_backend/internal/outreach"
	"leadreach_backend/platform/logger"
	"leadreach_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module. The generator may be
// nil, which disables AI composition in favor of templates. aiTimeout
// bounds each AI composition attempt.
func NewModule(pool *pgxpool.Pool, enricher *enrichsvc.Service, generator outreach.Generator, aiTimeout time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	composer := outreach.NewComposer(rng, log)

	svc := service.New(repo, enricher, composer, generator, aiTimeout, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetDeliverer wires the outreach email delivery dependency.
func (m *Module) SetDeliverer(deliverer handler.OutreachDeliverer) {
	m.handler.SetDeliverer(deliverer)
}

// SetBulkScheduler wires the async bulk outreach scheduler.
func (m *Module) SetBulkScheduler(bulk handler.BulkOutreachScheduler) {
	m.handler.SetBulkScheduler(bulk)
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
