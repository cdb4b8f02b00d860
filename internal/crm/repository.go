package crm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SyncState tracks the remote record a lead maps to in one provider.
type SyncState struct {
	LeadID       uuid.UUID
	Provider     string
	RemoteID     string
	LastSyncedAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetRemoteID returns the known remote record ID, or "" when the lead has
// not been synced to this provider before.
func (r *Repository) GetRemoteID(ctx context.Context, leadID uuid.UUID, provider string) (string, error) {
	var remoteID string
	err := r.pool.QueryRow(ctx,
		`SELECT remote_id FROM crm_sync_state WHERE lead_id = $1 AND provider = $2`,
		leadID, provider,
	).Scan(&remoteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return remoteID, nil
}

func (r *Repository) RecordSync(ctx context.Context, leadID uuid.UUID, provider, remoteID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO crm_sync_state (lead_id, provider, remote_id, last_synced_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (lead_id, provider)
		DO UPDATE SET remote_id = EXCLUDED.remote_id, last_synced_at = now()`,
		leadID, provider, remoteID,
	)
	return err
}

func (r *Repository) ListStates(ctx context.Context, provider string) ([]SyncState, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, provider, remote_id, last_synced_at
		FROM crm_sync_state
		WHERE provider = $1
		ORDER BY last_synced_at DESC`,
		provider,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []SyncState
	for rows.Next() {
		var s SyncState
		if err := rows.Scan(&s.LeadID, &s.Provider, &s.RemoteID, &s.LastSyncedAt); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}
