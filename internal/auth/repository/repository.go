package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("operator not found")
	ErrEmailTaken = errors.New("email already registered")
)

const uniqueViolationCode = "23505"

type Operator struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, email, fullName, passwordHash string) (Operator, error) {
	var op Operator
	err := r.pool.QueryRow(ctx, `
		INSERT INTO operators (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, password_hash, created_at, updated_at
	`, email, fullName, passwordHash).Scan(
		&op.ID, &op.Email, &op.FullName, &op.PasswordHash, &op.CreatedAt, &op.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return Operator{}, ErrEmailTaken
	}
	if err != nil {
		return Operator{}, err
	}
	return op, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Operator, error) {
	var op Operator
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at, updated_at
		FROM operators WHERE lower(email) = lower($1)
	`, email).Scan(
		&op.ID, &op.Email, &op.FullName, &op.PasswordHash, &op.CreatedAt, &op.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operator{}, ErrNotFound
	}
	return op, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Operator, error) {
	var op Operator
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at, updated_at
		FROM operators WHERE id = $1
	`, id).Scan(
		&op.ID, &op.Email, &op.FullName, &op.PasswordHash, &op.CreatedAt, &op.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operator{}, ErrNotFound
	}
	return op, err
}
