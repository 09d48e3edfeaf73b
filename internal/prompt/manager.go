package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/isaacphi/promptcheck/internal/repository"
	"github.com/isaacphi/promptcheck/internal/schema"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

// LoadPolicy decides what happens when a stored tool choice fails the contract.
type LoadPolicy string

const (
	// PolicyReject surfaces the validation error.
	PolicyReject LoadPolicy = "reject"
	// PolicyDefault substitutes toolchoice.Default and logs a warning.
	PolicyDefault LoadPolicy = "default"
)

func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch LoadPolicy(s) {
	case PolicyReject, PolicyDefault:
		return LoadPolicy(s), nil
	}
	return "", fmt.Errorf("unknown load policy %q: expected %s or %s", s, PolicyReject, PolicyDefault)
}

// Loaded is a stored prompt version after its tool choice has been checked.
type Loaded struct {
	Version    *domain.PromptVersion
	Prompt     domain.Prompt
	ToolChoice toolchoice.ToolChoice

	// Fallback is set when ToolChoice was substituted under PolicyDefault.
	// Issues then holds the reason.
	Fallback bool
	Issues   *schema.ValidationError
}

type Manager struct {
	repo   repository.PromptRepository
	policy LoadPolicy
	strict bool
	logger *slog.Logger
}

func NewManager(repo repository.PromptRepository, policy LoadPolicy, strict bool, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		repo:   repo,
		policy: policy,
		strict: strict,
		logger: logger,
	}
}

// Save validates p and stores it as a new version with its normalized tool choice.
func (m *Manager) Save(ctx context.Context, p domain.Prompt) (*domain.PromptVersion, error) {
	choice, err := Validate(p, m.strict)
	if err != nil {
		return nil, err
	}

	choiceJSON, err := toolchoice.Marshal(choice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode tool choice")
	}

	var toolsJSON []byte
	if len(p.Tools) > 0 {
		if toolsJSON, err = json.Marshal(p.Tools); err != nil {
			return nil, errors.Wrap(err, "failed to encode tools")
		}
	}

	version := &domain.PromptVersion{
		Name:           p.Name,
		Description:    p.Description,
		Template:       p.Template,
		ToolsJSON:      string(toolsJSON),
		ToolChoiceJSON: string(choiceJSON),
	}
	if err := m.repo.Create(ctx, version); err != nil {
		return nil, err
	}

	m.logger.Debug("saved prompt version", "id", version.ID, "name", version.Name, "tool_choice", toolchoice.Describe(choice))
	return version, nil
}

func (m *Manager) Load(ctx context.Context, id uuid.UUID) (*Loaded, error) {
	version, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.check(version)
}

// Find loads the version whose id starts with partialID.
func (m *Manager) Find(ctx context.Context, partialID string) (*Loaded, error) {
	version, err := m.repo.FindByPartialID(ctx, partialID)
	if err != nil {
		return nil, err
	}
	return m.check(version)
}

func (m *Manager) List(ctx context.Context, limit int) ([]*domain.PromptVersion, error) {
	return m.repo.List(ctx, limit)
}

// History lists every version of the named prompt, newest first.
func (m *Manager) History(ctx context.Context, name string) ([]*domain.PromptVersion, error) {
	return m.repo.ListByName(ctx, name)
}

// Resolve finds the version whose id starts with partialID without checking
// its tool choice, so broken versions can still be inspected and removed.
func (m *Manager) Resolve(ctx context.Context, partialID string) (*domain.PromptVersion, error) {
	return m.repo.FindByPartialID(ctx, partialID)
}

// Delete removes the version whose id starts with partialID.
func (m *Manager) Delete(ctx context.Context, partialID string) (*domain.PromptVersion, error) {
	version, err := m.Resolve(ctx, partialID)
	if err != nil {
		return nil, err
	}
	if err := m.repo.Delete(ctx, version.ID); err != nil {
		return nil, err
	}
	return version, nil
}

func (m *Manager) check(version *domain.PromptVersion) (*Loaded, error) {
	loaded := &Loaded{
		Version: version,
		Prompt: domain.Prompt{
			Name:        version.Name,
			Description: version.Description,
			Template:    version.Template,
		},
		ToolChoice: toolchoice.Default,
	}

	if version.ToolsJSON != "" {
		if err := json.Unmarshal([]byte(version.ToolsJSON), &loaded.Prompt.Tools); err != nil {
			return nil, errors.Wrapf(err, "prompt version %s has corrupt tools", version.ID)
		}
	}

	if version.ToolChoiceJSON != "" {
		res := toolchoice.Contract(m.strict).Validate(json.RawMessage(version.ToolChoiceJSON))
		switch {
		case res.OK():
			loaded.ToolChoice = res.Value
		case m.policy == PolicyDefault:
			loaded.Fallback = true
			loaded.Issues = res.Err.Prefix(toolChoiceField)
			m.logger.Warn("stored tool choice is invalid, using default",
				"id", version.ID,
				"default", toolchoice.Describe(toolchoice.Default),
				"error", loaded.Issues)
		default:
			return nil, errors.Wrapf(res.Err.Prefix(toolChoiceField), "prompt version %s", version.ID)
		}
	}

	loaded.Prompt.ToolChoice = loaded.ToolChoice
	return loaded, nil
}
