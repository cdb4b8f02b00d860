package transport

import (
	"time"

	"leadreach_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Request DTOs
type CreateLeadRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company         string `json:"company" validate:"required,min=1,max=200"`
	PropertyAddress string `json:"propertyAddress,omitempty" validate:"omitempty,max=300"`
	City            string `json:"city" validate:"required,min=1,max=100"`
	State           string `json:"state" validate:"required,min=2,max=50"`
	Country         string `json:"country" validate:"required,min=2,max=60"`
}

type UpdateLeadRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company         string `json:"company" validate:"required,min=1,max=200"`
	PropertyAddress string `json:"propertyAddress,omitempty" validate:"omitempty,max=300"`
	City            string `json:"city" validate:"required,min=1,max=100"`
	State           string `json:"state" validate:"required,min=2,max=50"`
	Country         string `json:"country" validate:"required,min=2,max=60"`
}

type ComposeOutreachRequest struct {
	UseAI *bool `json:"useAi,omitempty"`
}

type SendOutreachRequest struct {
	// Recipient overrides the lead's stored email when set.
	Recipient string `json:"recipient,omitempty" validate:"omitempty,email"`
}

// Response DTOs
type LeadResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	Company         string    `json:"company"`
	PropertyAddress *string   `json:"propertyAddress,omitempty"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`

	Temperature        *float64   `json:"temperature,omitempty"`
	WeatherDescription *string    `json:"weatherDescription,omitempty"`
	MedianIncome       *float64   `json:"medianIncome,omitempty"`
	Population         *int64     `json:"population,omitempty"`
	PercentRenters     *float64   `json:"percentRenters,omitempty"`
	EnrichedAt         *time.Time `json:"enrichedAt,omitempty"`

	Score         *int    `json:"score,omitempty"`
	ScoreCategory *string `json:"scoreCategory,omitempty"`
	Insights      *string `json:"insights,omitempty"`

	OutreachSubject *string `json:"outreachSubject,omitempty"`
	OutreachMessage *string `json:"outreachMessage,omitempty"`
	OutreachSource  *string `json:"outreachSource,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StatsResponse struct {
	Total        int     `json:"total"`
	HighCount    int     `json:"highCount"`
	MediumCount  int     `json:"mediumCount"`
	LowCount     int     `json:"lowCount"`
	AverageScore float64 `json:"averageScore"`
}

// ToLeadResponse maps a repository lead to its API representation.
func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:              lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Company:         lead.Company,
		PropertyAddress: lead.PropertyAddress,
		City:            lead.City,
		State:           lead.State,
		Country:         lead.Country,

		Temperature:        lead.Temperature,
		WeatherDescription: lead.WeatherDescription,
		MedianIncome:       lead.MedianIncome,
		Population:         lead.Population,
		PercentRenters:     lead.PercentRenters,
		EnrichedAt:         lead.EnrichedAt,

		Score:         lead.Score,
		ScoreCategory: lead.ScoreCategory,
		Insights:      lead.Insights,

		OutreachSubject: lead.OutreachSubject,
		OutreachMessage: lead.OutreachMessage,
		OutreachSource:  lead.OutreachSource,

		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

// ToLeadResponses maps a slice of leads.
func ToLeadResponses(leads []repository.Lead) []LeadResponse {
	responses := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, ToLeadResponse(lead))
	}
	return responses
}

// ToStatsResponse maps repository stats to the API shape.
func ToStatsResponse(stats repository.Stats) StatsResponse {
	return StatsResponse{
		Total:        stats.Total,
		HighCount:    stats.HighCount,
		MediumCount:  stats.MediumCount,
		LowCount:     stats.LowCount,
		AverageScore: stats.AverageScore,
	}
}
