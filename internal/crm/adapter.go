package crm

import (
	"context"
	"strings"
	"time"

	"leadreach_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Record is the provider-neutral view of a lead being synchronized.
type Record struct {
	LeadID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Company   string
	City      string
	State     string
	Country   string

	Score              *int
	ScoreCategory      *string
	Temperature        *float64
	WeatherDescription *string
	MedianIncome       *float64
	PercentRenters     *float64
	Population         *int64
	Insights           *string
	OutreachMessage    *string
	EnrichedAt         *time.Time
}

// Adapter pushes lead records into one CRM system.
type Adapter interface {
	// Name returns the provider identifier (e.g. "hubspot").
	Name() string
	// UpsertLead creates or updates the remote record and returns its ID.
	// An empty remoteID means no record is known yet.
	UpsertLead(ctx context.Context, record Record, remoteID string) (string, error)
}

// RecordFromLead maps a stored lead to the sync record. The single name
// field splits into first and last name for CRM contact identity.
func RecordFromLead(lead repository.Lead) Record {
	first, last := splitName(lead.Name)
	return Record{
		LeadID:    lead.ID,
		Email:     lead.Email,
		FirstName: first,
		LastName:  last,
		Company:   lead.Company,
		City:      lead.City,
		State:     lead.State,
		Country:   lead.Country,

		Score:              lead.Score,
		ScoreCategory:      lead.ScoreCategory,
		Temperature:        lead.Temperature,
		WeatherDescription: lead.WeatherDescription,
		MedianIncome:       lead.MedianIncome,
		PercentRenters:     lead.PercentRenters,
		Population:         lead.Population,
		Insights:           lead.Insights,
		OutreachMessage:    lead.OutreachMessage,
		EnrichedAt:         lead.EnrichedAt,
	}
}

// attributes flattens the record into local attribute names understood by
// the field mappings. Nil enrichment values are omitted.
func (r Record) attributes() map[string]any {
	attrs := map[string]any{
		"email":      r.Email,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"company":    r.Company,
		"city":       r.City,
		"state":      r.State,
		"country":    r.Country,
	}

	if r.Score != nil {
		attrs["score"] = *r.Score
	}
	if r.ScoreCategory != nil {
		attrs["score_category"] = *r.ScoreCategory
	}
	if r.Temperature != nil {
		attrs["temperature"] = *r.Temperature
	}
	if r.WeatherDescription != nil {
		attrs["weather_description"] = *r.WeatherDescription
	}
	if r.MedianIncome != nil {
		attrs["median_income"] = *r.MedianIncome
	}
	if r.PercentRenters != nil {
		attrs["percent_renters"] = *r.PercentRenters
	}
	if r.Population != nil {
		attrs["population"] = *r.Population
	}
	if r.Insights != nil {
		attrs["insights"] = *r.Insights
	}
	if r.OutreachMessage != nil {
		attrs["outreach_message"] = *r.OutreachMessage
	}
	if r.EnrichedAt != nil {
		attrs["enriched_at"] = r.EnrichedAt.UTC().Format(time.RFC3339)
		attrs["status"] = "Success"
	}

	return attrs
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
