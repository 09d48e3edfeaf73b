package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnv populates the process environment from ./.env, falling back to
// ~/.promptcheck.env. Variables already set win; missing files are ignored.
func loadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".promptcheck.env"))
	}
}
