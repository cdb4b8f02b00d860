// Package exports serves lead data exports for downstream tooling.
// CSV downloads are authenticated with dedicated API keys so reporting
// scripts never hold operator credentials; key management itself sits
// behind the regular JWT auth.
package exports

import (
	apphttp "leadreach_backend/internal/http"
	"leadreach_backend/platform/logger"
	"leadreach_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
}

// NewModule creates and initializes the exports module.
func NewModule(pool *pgxpool.Pool, leads LeadLister, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	handler := NewHandler(repo, leads, val, log)

	return &Module{
		handler: handler,
		repo:    repo,
	}
}

// SetArchiver enables archiving generated exports to object storage.
func (m *Module) SetArchiver(archiver *Archiver) {
	m.handler.SetArchiver(archiver)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	publicGroup := ctx.V1.Group("/exports")
	publicGroup.Use(APIKeyAuthMiddleware(m.repo))
	publicGroup.GET("/leads.csv", m.handler.ExportLeadsCSV)

	keyGroup := ctx.Protected.Group("/exports/keys")
	keyGroup.POST("", m.handler.HandleCreateAPIKey)
	keyGroup.GET("", m.handler.HandleListAPIKeys)
	keyGroup.DELETE("/:keyId", m.handler.HandleRevokeAPIKey)
}

// Wait blocks until all background archive uploads have completed.
// Call this during graceful server shutdown.
func (m *Module) Wait() { m.handler.Wait() }

var _ apphttp.Module = (*Module)(nil)
