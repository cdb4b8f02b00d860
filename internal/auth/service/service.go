package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"leadreach_backend/internal/auth/password"
	"leadreach_backend/internal/auth/repository"
	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const accessTokenType = "access"

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a new operator account.
func (s *Service) Register(ctx context.Context, email, fullName, plainPassword string) (repository.Operator, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.Operator{}, err
	}

	op, err := s.repo.Create(ctx, strings.ToLower(strings.TrimSpace(email)), fullName, hash)
	if err != nil {
		return repository.Operator{}, err
	}

	s.log.AuthEvent("register", op.Email, true, "")
	return op, nil
}

// Login verifies credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, repository.Operator, error) {
	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", repository.Operator{}, ErrInvalidCredentials
	}

	if err := password.Compare(op.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", op.Email, false, "password mismatch")
		return "", repository.Operator{}, ErrInvalidCredentials
	}

	token, err := s.signJWT(op.ID)
	if err != nil {
		return "", repository.Operator{}, err
	}

	s.log.AuthEvent("login", op.Email, true, "")
	return token, op, nil
}

// GetOperator returns the operator for an authenticated identity.
func (s *Service) GetOperator(ctx context.Context, id uuid.UUID) (repository.Operator, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) signJWT(operatorID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  operatorID.String(),
		"type": accessTokenType,
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
