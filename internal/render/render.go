// Package render turns prompt text and validation results into terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Mode selects how prompt text is displayed. Exactly one mode is active.
type Mode string

const (
	ModeMarkdown Mode = "markdown"
	ModeText     Mode = "text"
)

func Modes() []Mode { return []Mode{ModeMarkdown, ModeText} }

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeMarkdown:
		return ModeMarkdown, nil
	case ModeText:
		return ModeText, nil
	}
	return "", fmt.Errorf("unknown display mode %q: expected %s or %s", s, ModeMarkdown, ModeText)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeMarkdown {
		return ModeText
	}
	return ModeMarkdown
}

// Block renders text in the given mode. It depends only on its arguments:
// markdown uses the ascii glamour style so output carries no terminal colors.
func Block(text string, mode Mode, width int) (string, error) {
	switch mode {
	case ModeText:
		return strings.TrimRight(text, " \t\n") + "\n", nil
	case ModeMarkdown:
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("ascii"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		out, err := r.Render(text)
		if err != nil {
			return "", fmt.Errorf("failed to render markdown: %w", err)
		}
		return out, nil
	}
	return "", fmt.Errorf("unknown display mode %q", mode)
}
