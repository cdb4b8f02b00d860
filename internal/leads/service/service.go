// Package service orchestrates the lead pipeline: enrichment, scoring,
// insight derivation and outreach composition.
package service

import (
	"context"
	"errors"
	"time"

	enrichsvc "leadreach_backend/internal/enrichment/service"
	"leadreach_backend/internal/leads/insights"
	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/internal/leads/scoring"
	"leadreach_backend/internal/leads/transport"
	"leadreach_backend/internal/outreach"
	"leadreach_backend/platform/logger"
	"leadreach_backend/platform/phone"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// HighValueScoreMin is the score floor for bulk outreach campaigns.
const HighValueScoreMin = scoring.CategoryHighMin

type Service struct {
	repo      *repository.Repository
	enricher  *enrichsvc.Service
	composer  *outreach.Composer
	generator outreach.Generator
	aiTimeout time.Duration
	log       *logger.Logger
}

// New creates the lead service. The generator may be nil, which forces
// template-based outreach. aiTimeout bounds a single AI composition
// attempt; zero disables the bound.
func New(repo *repository.Repository, enricher *enrichsvc.Service, composer *outreach.Composer, generator outreach.Generator, aiTimeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		enricher:  enricher,
		composer:  composer,
		generator: generator,
		aiTimeout: aiTimeout,
		log:       log,
	}
}

// Create stores a new lead and runs the full pipeline: enrichment,
// scoring, insights and outreach composition.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (repository.Lead, error) {
	params := repository.CreateLeadParams{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           normalizedPhone(req.Phone),
		Company:         req.Company,
		PropertyAddress: optional(req.PropertyAddress),
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Lead{}, err
	}

	lead, err = s.Enrich(ctx, lead.ID)
	if err != nil {
		return repository.Lead{}, err
	}

	return s.ComposeOutreach(ctx, lead.ID, true)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, ErrLeadNotFound
	}
	return lead, err
}

func (s *Service) List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error) {
	return s.repo.List(ctx, params)
}

// Update changes contact fields. Location changes invalidate enrichment,
// so the pipeline reruns when city, state or country moved.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (repository.Lead, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}

	moved := existing.City != req.City || existing.State != req.State || existing.Country != req.Country

	lead, err := s.repo.Update(ctx, id, repository.UpdateLeadParams{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           normalizedPhone(req.Phone),
		Company:         req.Company,
		PropertyAddress: optional(req.PropertyAddress),
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, ErrLeadNotFound
	}
	if err != nil {
		return repository.Lead{}, err
	}

	if moved {
		if lead, err = s.Enrich(ctx, id); err != nil {
			return repository.Lead{}, err
		}
		return s.ComposeOutreach(ctx, id, true)
	}

	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLeadNotFound
	}
	return err
}

func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// Enrich fetches signals for the lead's location, scores the lead and
// derives insights. The signal lookup never fails outright since the
// enricher degrades to estimates.
func (s *Service) Enrich(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}

	signal := s.enricher.Enrich(ctx, enrichsvc.Location{
		City:    lead.City,
		State:   lead.State,
		Country: lead.Country,
	})

	result := scoring.Score(signal.PercentRenters, signal.MedianIncome, signal.Temperature)
	tags := insights.Derive(signal.PercentRenters, signal.MedianIncome, signal.Temperature)

	lead, err = s.repo.UpdateEnrichment(ctx, id, repository.UpdateEnrichmentParams{
		Temperature:        signal.Temperature,
		WeatherDescription: signal.WeatherDescription,
		MedianIncome:       signal.MedianIncome,
		Population:         signal.Population,
		PercentRenters:     signal.PercentRenters,
		Score:              result.TotalScore,
		ScoreCategory:      result.Category,
		Insights:           insights.Join(tags),
		EnrichedAt:         time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, ErrLeadNotFound
	}
	return lead, err
}

// ComposeOutreach generates and persists the outreach message for a lead.
// When useAI is set and a generator is configured, composition goes
// through the AI path, which silently falls back to templates on failure.
func (s *Service) ComposeOutreach(ctx context.Context, id uuid.UUID, useAI bool) (repository.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}

	message := s.composeFor(ctx, lead, useAI)

	lead, err = s.repo.UpdateOutreach(ctx, id, message.Subject, message.Body, message.Source)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, ErrLeadNotFound
	}
	return lead, err
}

// Alternatives returns additional template variations without persisting them.
func (s *Service) Alternatives(ctx context.Context, id uuid.UUID, count int) ([]outreach.Message, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.composer.Alternatives(lead.Name, lead.Company, lead.City,
		deref(lead.WeatherDescription), deref(lead.Insights), count), nil
}

// ScoreBreakdown explains how the stored enrichment produced the score.
func (s *Service) ScoreBreakdown(ctx context.Context, id uuid.UUID) (scoring.Breakdown, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return scoring.Breakdown{}, err
	}
	if lead.EnrichedAt == nil {
		return scoring.Breakdown{}, errors.New("lead has not been enriched")
	}
	return scoring.BreakdownFor(derefFloat(lead.PercentRenters), derefFloat(lead.MedianIncome), derefFloat(lead.Temperature)), nil
}

// Weights exposes the scoring model's component maxima.
func (s *Service) Weights() []scoring.WeightEntry {
	return scoring.Weights()
}

func (s *Service) GetStats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx)
}

// ListHighValue returns leads eligible for bulk outreach.
func (s *Service) ListHighValue(ctx context.Context) ([]repository.Lead, error) {
	return s.repo.ListScoredAbove(ctx, HighValueScoreMin)
}

// RecordOutreachEmail audits a delivered outreach message.
func (s *Service) RecordOutreachEmail(ctx context.Context, leadID uuid.UUID, recipient, subject, body, source string) error {
	return s.repo.RecordOutreachEmail(ctx, leadID, recipient, subject, body, source)
}

func (s *Service) composeFor(ctx context.Context, lead repository.Lead, useAI bool) outreach.Message {
	weather := deref(lead.WeatherDescription)
	tags := deref(lead.Insights)

	if useAI && s.generator != nil {
		genCtx := ctx
		if s.aiTimeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(ctx, s.aiTimeout)
			defer cancel()
		}
		return s.composer.ComposeAI(genCtx, s.generator, outreach.LeadContext{
			Name:               lead.Name,
			Company:            lead.Company,
			City:               lead.City,
			State:              lead.State,
			WeatherDescription: weather,
			Temperature:        derefFloat(lead.Temperature),
			MedianIncome:       derefFloat(lead.MedianIncome),
			PercentRenters:     derefFloat(lead.PercentRenters),
			Population:         derefInt(lead.Population),
			Insights:           tags,
		})
	}

	return s.composer.ComposeTemplate(lead.Name, lead.Company, lead.City, weather, tags)
}

func normalizedPhone(value string) *string {
	if value == "" {
		return nil
	}
	normalized := phone.NormalizeE164(value)
	return &normalized
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefFloat(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func derefInt(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}
