package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           *string
	Company         string
	PropertyAddress *string
	City            string
	State           string
	Country         string

	Temperature        *float64
	WeatherDescription *string
	MedianIncome       *float64
	Population         *int64
	PercentRenters     *float64
	EnrichedAt         *time.Time

	Score         *int
	ScoreCategory *string
	Insights      *string

	OutreachSubject *string
	OutreachMessage *string
	OutreachSource  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const leadColumns = `id, name, email, phone, company, property_address, city, state, country,
	temperature, weather_description, median_income, population, percent_renters, enriched_at,
	score, score_category, insights, outreach_subject, outreach_message, outreach_source,
	created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company, &lead.PropertyAddress,
		&lead.City, &lead.State, &lead.Country,
		&lead.Temperature, &lead.WeatherDescription, &lead.MedianIncome, &lead.Population,
		&lead.PercentRenters, &lead.EnrichedAt,
		&lead.Score, &lead.ScoreCategory, &lead.Insights,
		&lead.OutreachSubject, &lead.OutreachMessage, &lead.OutreachSource,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

type CreateLeadParams struct {
	Name            string
	Email           string
	Phone           *string
	Company         string
	PropertyAddress *string
	City            string
	State           string
	Country         string
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, company, property_address, city, state, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+leadColumns,
		params.Name, params.Email, params.Phone, params.Company, params.PropertyAddress,
		params.City, params.State, params.Country,
	)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id)
	return scanLead(row)
}

type UpdateLeadParams struct {
	Name            string
	Email           string
	Phone           *string
	Company         string
	PropertyAddress *string
	City            string
	State           string
	Country         string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, company = $5, property_address = $6,
			city = $7, state = $8, country = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, params.Name, params.Email, params.Phone, params.Company, params.PropertyAddress,
		params.City, params.State, params.Country,
	)
	return scanLead(row)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every lead. Used by the dashboard "clear all" action.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type UpdateEnrichmentParams struct {
	Temperature        float64
	WeatherDescription string
	MedianIncome       float64
	Population         int64
	PercentRenters     float64
	Score              int
	ScoreCategory      string
	Insights           string
	EnrichedAt         time.Time
}

// UpdateEnrichment stores enrichment signals together with the derived
// score and insights so the lead never holds a stale score.
func (r *Repository) UpdateEnrichment(ctx context.Context, id uuid.UUID, params UpdateEnrichmentParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET temperature = $2, weather_description = $3, median_income = $4, population = $5,
			percent_renters = $6, score = $7, score_category = $8, insights = $9,
			enriched_at = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, params.Temperature, params.WeatherDescription, params.MedianIncome, params.Population,
		params.PercentRenters, params.Score, params.ScoreCategory, params.Insights, params.EnrichedAt,
	)
	return scanLead(row)
}

// UpdateOutreach stores the composed outreach message and its provenance.
func (r *Repository) UpdateOutreach(ctx context.Context, id uuid.UUID, subject, body, source string) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET outreach_subject = $2, outreach_message = $3, outreach_source = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, subject, body, source,
	)
	return scanLead(row)
}

type ListParams struct {
	Category string
	MinScore *int
	Search   string
	Limit    int
	Offset   int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("score_category = $%d", len(args)))
	}
	if params.MinScore != nil {
		args = append(args, *params.MinScore)
		conditions = append(conditions, fmt.Sprintf("score >= $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR company ILIKE $%d OR city ILIKE $%d)", idx, idx, idx))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if params.Offset > 0 {
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// ListScoredAbove returns leads whose score meets the threshold, best first.
// Ordering matches idx_leads_score.
func (r *Repository) ListScoredAbove(ctx context.Context, minScore int) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE score >= $1
		ORDER BY score DESC, created_at DESC`,
		minScore,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type Stats struct {
	Total        int
	HighCount    int
	MediumCount  int
	LowCount     int
	AverageScore float64
}

func (r *Repository) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE score_category = 'High'),
			COUNT(*) FILTER (WHERE score_category = 'Medium'),
			COUNT(*) FILTER (WHERE score_category = 'Low'),
			COALESCE(AVG(score), 0)
		FROM leads
	`).Scan(&stats.Total, &stats.HighCount, &stats.MediumCount, &stats.LowCount, &stats.AverageScore)
	return stats, err
}

// RecordOutreachEmail appends a delivery record for auditing sent messages.
func (r *Repository) RecordOutreachEmail(ctx context.Context, leadID uuid.UUID, recipient, subject, body, source string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO outreach_emails (lead_id, recipient, subject, body, source)
		VALUES ($1, $2, $3, $4, $5)
	`, leadID, recipient, subject, body, source)
	return err
}
