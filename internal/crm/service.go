package crm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"leadreach_backend/internal/leads/repository"
	leadsvc "leadreach_backend/internal/leads/service"
	"leadreach_backend/platform/logger"

	"github.com/google/uuid"
)

var ErrUnknownProvider = errors.New("unknown crm provider")

// LeadSource supplies the leads to push into CRM systems.
type LeadSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error)
}

// SyncResult reports the outcome of syncing a single lead.
type SyncResult struct {
	LeadID   uuid.UUID `json:"leadId"`
	Provider string    `json:"provider"`
	RemoteID string    `json:"remoteId"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
	SyncedAt time.Time `json:"syncedAt"`
}

// SyncSummary aggregates a bulk sync run.
type SyncSummary struct {
	Provider string       `json:"provider"`
	Total    int          `json:"total"`
	Synced   int          `json:"synced"`
	Failed   int          `json:"failed"`
	Results  []SyncResult `json:"results"`
}

type Service struct {
	adapters map[string]Adapter
	repo     *Repository
	leads    LeadSource
	log      *logger.Logger
}

func NewService(adapters []Adapter, repo *Repository, leads LeadSource, log *logger.Logger) *Service {
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &Service{adapters: byName, repo: repo, leads: leads, log: log}
}

// Providers lists the configured CRM providers in stable order.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.adapters))
	for name := range s.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SyncLead pushes one lead to the named provider, creating or updating
// the remote record and recording the mapping.
func (s *Service) SyncLead(ctx context.Context, provider string, leadID uuid.UUID) (SyncResult, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return SyncResult{}, ErrUnknownProvider
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return SyncResult{}, err
	}

	return s.syncOne(ctx, adapter, lead), nil
}

// SyncAll pushes every enriched lead to the named provider. Individual
// failures are collected; they do not stop the run.
func (s *Service) SyncAll(ctx context.Context, provider string) (SyncSummary, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return SyncSummary{}, ErrUnknownProvider
	}

	leads, err := s.leads.List(ctx, repository.ListParams{})
	if err != nil {
		return SyncSummary{}, err
	}

	summary := SyncSummary{Provider: provider}
	for _, lead := range leads {
		if lead.EnrichedAt == nil {
			continue
		}
		summary.Total++

		result := s.syncOne(ctx, adapter, lead)
		if result.Status == "Success" {
			summary.Synced++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
	}

	s.log.Info("crm bulk sync finished",
		"provider", provider,
		"total", summary.Total,
		"synced", summary.Synced,
		"failed", summary.Failed,
	)
	return summary, nil
}

func (s *Service) syncOne(ctx context.Context, adapter Adapter, lead repository.Lead) SyncResult {
	result := SyncResult{
		LeadID:   lead.ID,
		Provider: adapter.Name(),
		SyncedAt: time.Now().UTC(),
	}

	remoteID, err := s.repo.GetRemoteID(ctx, lead.ID, adapter.Name())
	if err != nil {
		result.Status = "Failed"
		result.Error = fmt.Sprintf("lookup sync state: %v", err)
		return result
	}

	newRemoteID, err := adapter.UpsertLead(ctx, RecordFromLead(lead), remoteID)
	if err != nil {
		s.log.ExternalAPIError(adapter.Name(), "upsert lead", err)
		result.Status = "Failed"
		result.Error = err.Error()
		return result
	}

	if err := s.repo.RecordSync(ctx, lead.ID, adapter.Name(), newRemoteID); err != nil {
		s.log.DatabaseError("record crm sync", err)
	}

	result.RemoteID = newRemoteID
	result.Status = "Success"
	return result
}

var _ LeadSource = (*leadsvc.Service)(nil)
