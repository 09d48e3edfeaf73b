package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/isaacphi/promptcheck/internal/domain"
)

type PromptRepository interface {
	Create(ctx context.Context, version *domain.PromptVersion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PromptVersion, error)
	FindByPartialID(ctx context.Context, partialID string) (*domain.PromptVersion, error)
	ListByName(ctx context.Context, name string) ([]*domain.PromptVersion, error)
	List(ctx context.Context, limit int) ([]*domain.PromptVersion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
