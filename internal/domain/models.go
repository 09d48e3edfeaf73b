package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prompt is a prompt configuration as authored in a file. ToolChoice is
// untrusted until it has passed the tool-choice contract.
type Prompt struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Template    string `json:"template" yaml:"template"`
	Tools       []Tool `json:"tools,omitempty" yaml:"tools,omitempty" validate:"unique=Name,dive"`
	ToolChoice  any    `json:"tool_choice,omitempty" yaml:"tool_choice,omitempty"`

	// Unknown lists top-level file keys no field above declares.
	Unknown []string `json:"-" yaml:"-"`
}

// PromptVersion is one stored revision of a prompt.
type PromptVersion struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	Name           string    `gorm:"index;not null"`
	Description    string
	Template       string `gorm:"type:text"`
	ToolsJSON      string `gorm:"type:text"`
	ToolChoiceJSON string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (v *PromptVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
