// Package crm synchronizes scored leads into external CRM systems.
// Adapters for HubSpot and Salesforce translate enrichment fields to
// provider-specific property names via embedded mappings.
package crm

import (
	"fmt"

	apphttp "leadreach_backend/internal/http"
	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	service *Service
	handler *Handler
}

// NewModule wires the CRM adapters that have credentials configured.
// With no provider configured the module still mounts, exposing an
// empty provider list.
func NewModule(pool *pgxpool.Pool, cfg config.CRMConfig, leads LeadSource, log *logger.Logger) (*Module, error) {
	mappings, err := loadMappings()
	if err != nil {
		return nil, fmt.Errorf("load crm field mappings: %w", err)
	}

	var adapters []Adapter
	if key := cfg.GetHubSpotAPIKey(); key != "" {
		adapters = append(adapters, NewHubSpotAdapter(key, mappings["hubspot"], log))
	}
	if instanceURL, token := cfg.GetSalesforceInstanceURL(), cfg.GetSalesforceAccessToken(); instanceURL != "" && token != "" {
		adapters = append(adapters, NewSalesforceAdapter(instanceURL, token, mappings["salesforce"], log))
	}

	svc := NewService(adapters, NewRepository(pool), leads, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc),
	}, nil
}

func (m *Module) Name() string { return "crm" }

func (m *Module) Service() *Service { return m.service }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/crm"))
}

var _ apphttp.Module = (*Module)(nil)
