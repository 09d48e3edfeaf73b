package sqlite

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (r *promptRepo) Create(ctx context.Context, version *domain.PromptVersion) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(version).Error, "failed to create prompt version")
}

func (r *promptRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PromptVersion, error) {
	var version domain.PromptVersion
	if err := r.db.WithContext(ctx).First(&version, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{ID: id.String()}
		}
		return nil, errors.Wrapf(err, "failed to load prompt version %s", id)
	}
	return &version, nil
}

func (r *promptRepo) FindByPartialID(ctx context.Context, partialID string) (*domain.PromptVersion, error) {
	var versions []domain.PromptVersion

	// Convert the string to lowercase for case-insensitive comparison
	partialID = strings.ToLower(partialID)

	// The prefix goes into LIKE, so % and _ must never reach it.
	if !isPartialID(partialID) {
		return nil, errors.Wrapf(domain.ErrInvalidID, "%q", partialID)
	}

	if err := r.db.WithContext(ctx).
		Where("LOWER(CAST(id AS TEXT)) LIKE ?", partialID+"%").
		Limit(2).
		Find(&versions).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find prompt version %s", partialID)
	}

	switch len(versions) {
	case 0:
		return nil, domain.NotFoundError{ID: partialID}
	case 1:
		return &versions[0], nil
	}
	return nil, errors.Wrapf(domain.ErrAmbiguousID, "%q", partialID)
}

func (r *promptRepo) ListByName(ctx context.Context, name string) ([]*domain.PromptVersion, error) {
	var versions []*domain.PromptVersion
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at DESC").
		Find(&versions).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list versions of %s", name)
	}
	return versions, nil
}

func (r *promptRepo) List(ctx context.Context, limit int) ([]*domain.PromptVersion, error) {
	var versions []*domain.PromptVersion
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&versions).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list prompt versions")
	}
	return versions, nil
}

func (r *promptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.PromptVersion{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to delete prompt version %s", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{ID: id.String()}
	}
	return nil
}

func isPartialID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return false
		}
	}
	return true
}

func (r *promptRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access database handle")
	}
	return sqlDB.Close()
}
