package sqlite

import (
	"github.com/isaacphi/promptcheck/internal/repository"

	"gorm.io/gorm"
)

type promptRepo struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) repository.PromptRepository {
	return &promptRepo{db: db}
}
