// Package appState owns the resources one promptcheck invocation shares:
// the loaded config, the logger and the prompt store behind a prompt.Manager.
package appState

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/isaacphi/promptcheck/internal/config"
	"github.com/isaacphi/promptcheck/internal/prompt"
	"github.com/isaacphi/promptcheck/internal/repository"
	sqliteRepo "github.com/isaacphi/promptcheck/internal/repository/sqlite"
)

// Opener opens the prompt store at a configured path.
type Opener func(path string) (repository.PromptRepository, error)

// App is the state of a running command. The prompt store is only opened
// by commands that ask for a manager.
type App struct {
	Config *config.ConfigSchema
	Logger *slog.Logger

	open    Opener
	closers []io.Closer

	managerOnce sync.Once
	manager     *prompt.Manager
	managerErr  error
}

// stderr is swapped in tests.
var stderr io.Writer = os.Stderr

var (
	current  *App
	initOnce sync.Once
	initErr  error
	mu       sync.RWMutex
)

// Initialize loads config with the given overrides and installs the
// process-wide App.
func Initialize(overrides *config.RuntimeOverrides) error {
	initOnce.Do(func() {
		cfg, err := config.New(overrides)
		if err != nil {
			initErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		app, err := New(cfg, sqliteRepo.Initialize)
		if err != nil {
			initErr = err
			return
		}

		mu.Lock()
		current = app
		mu.Unlock()
		slog.SetDefault(app.Logger)
	})
	return initErr
}

// New builds an App around cfg. open is used the first time PromptManager
// is called.
func New(cfg *config.ConfigSchema, open Opener) (*App, error) {
	logger, logFile, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	app := &App{Config: cfg, Logger: logger, open: open}
	if logFile != nil {
		app.closers = append(app.closers, logFile)
	}
	return app, nil
}

// Get returns the process-wide App and panics before Initialize.
func Get() *App {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		panic("app not initialized")
	}
	return current
}

// TryGet reports whether Initialize has installed an App.
func TryGet() (*App, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return current, current != nil
}

// Cleanup closes the process-wide App.
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		return nil
	}
	return current.Close()
}

// PromptManager opens the configured store on first use and returns the
// same manager, or the same error, on every later call.
func (a *App) PromptManager() (*prompt.Manager, error) {
	a.managerOnce.Do(func() {
		policy, err := prompt.ParseLoadPolicy(a.Config.Contract.OnInvalid)
		if err != nil {
			a.managerErr = err
			return
		}

		repo, err := a.open(a.Config.DBPath)
		if err != nil {
			a.managerErr = fmt.Errorf("failed to open prompt store: %w", err)
			return
		}
		a.closers = append(a.closers, repo)

		a.Logger.Debug("opened prompt store", "path", a.Config.DBPath, "policy", policy)
		a.manager = prompt.NewManager(repo, policy, a.Config.Contract.Strict, a.Logger)
	})
	return a.manager, a.managerErr
}

// Close releases everything the App opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newLogger writes text logs to stderr, since stdout carries command output,
// or appends them to cfg.LogFile. Unparseable levels fall back to WARN.
func newLogger(cfg config.Log) (*slog.Logger, *os.File, error) {
	level := slog.LevelWarn
	var parsed slog.Level
	if cfg.LogLevel != "" && parsed.UnmarshalText([]byte(cfg.LogLevel)) == nil {
		level = parsed
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: true}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, opts)), file, nil
}
