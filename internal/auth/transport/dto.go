package transport

import (
	"time"

	"leadreach_backend/internal/auth/repository"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OperatorResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string           `json:"accessToken"`
	Operator    OperatorResponse `json:"operator"`
}

func ToOperatorResponse(op repository.Operator) OperatorResponse {
	return OperatorResponse{
		ID:        op.ID,
		Email:     op.Email,
		FullName:  op.FullName,
		CreatedAt: op.CreatedAt,
	}
}
