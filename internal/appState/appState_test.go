package appState

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/promptcheck/internal/config"
	"github.com/isaacphi/promptcheck/internal/repository"
	sqliteRepo "github.com/isaacphi/promptcheck/internal/repository/sqlite"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	stderr = &buf
	t.Cleanup(func() { stderr = os.Stderr })

	logger, file, err := newLogger(config.Log{LogLevel: "ERROR"})
	require.NoError(t, err)
	assert.Nil(t, file)

	logger.Warn("quiet")
	logger.Error("loud", "id", 7)
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud id=7")

	for _, level := range []string{"", "LOUD"} {
		buf.Reset()
		logger, _, err = newLogger(config.Log{LogLevel: level})
		require.NoError(t, err)
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden", level)
		assert.Contains(t, buf.String(), "shown", level)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptcheck.log")

	logger, file, err := newLogger(config.Log{LogLevel: "DEBUG", LogFile: path})
	require.NoError(t, err)
	require.NotNil(t, file)

	logger.Debug("written")
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestNewLoggerBadFile(t *testing.T) {
	_, _, err := newLogger(config.Log{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.ErrorContains(t, err, "failed to open log file")
}

func testConfig(onInvalid string) *config.ConfigSchema {
	return &config.ConfigSchema{
		DBPath:   ":memory:",
		Log:      config.Log{LogLevel: "ERROR"},
		Contract: config.Contract{OnInvalid: onInvalid},
	}
}

// closeCounter wraps a real store and counts Close calls.
type closeCounter struct {
	repository.PromptRepository
	closed *int
}

func (r closeCounter) Close() error {
	*r.closed++
	return r.PromptRepository.Close()
}

func TestPromptManagerOpensStoreOnce(t *testing.T) {
	opened, closed := 0, 0
	open := func(path string) (repository.PromptRepository, error) {
		opened++
		repo, err := sqliteRepo.Initialize(path)
		if err != nil {
			return nil, err
		}
		return closeCounter{PromptRepository: repo, closed: &closed}, nil
	}

	app, err := New(testConfig("reject"), open)
	require.NoError(t, err)
	assert.Equal(t, 0, opened)

	first, err := app.PromptManager()
	require.NoError(t, err)
	second, err := app.PromptManager()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, opened)

	require.NoError(t, app.Close())
	assert.Equal(t, 1, closed)
	require.NoError(t, app.Close())
	assert.Equal(t, 1, closed)
}

func TestPromptManagerErrors(t *testing.T) {
	opened := 0
	failing := func(string) (repository.PromptRepository, error) {
		opened++
		return nil, errors.New("disk on fire")
	}

	app, err := New(testConfig("explode"), failing)
	require.NoError(t, err)
	_, err = app.PromptManager()
	assert.ErrorContains(t, err, `unknown load policy "explode"`)
	assert.Equal(t, 0, opened)

	app, err = New(testConfig("default"), failing)
	require.NoError(t, err)
	_, err = app.PromptManager()
	assert.ErrorContains(t, err, "failed to open prompt store: disk on fire")
	_, again := app.PromptManager()
	assert.Equal(t, err, again)
	assert.Equal(t, 1, opened)
	assert.NoError(t, app.Close())
}

func TestCloseJoinsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptcheck.log")
	cfg := testConfig("reject")
	cfg.Log.LogFile = path

	app, err := New(cfg, sqliteRepo.Initialize)
	require.NoError(t, err)
	require.Len(t, app.closers, 1)

	// Closing the log file early makes the App's own close fail.
	require.NoError(t, app.closers[0].Close())
	assert.ErrorIs(t, app.Close(), os.ErrClosed)
}
