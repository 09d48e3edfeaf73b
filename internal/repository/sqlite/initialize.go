package sqlite

import (
	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/isaacphi/promptcheck/internal/repository"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the SQLite database at dbPath and migrates the prompt schema.
func Initialize(dbPath string) (repository.PromptRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access database handle")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.PromptVersion{}); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return NewPromptRepository(db), nil
}
