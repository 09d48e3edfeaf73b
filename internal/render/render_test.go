package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/promptcheck/internal/schema"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMode("Markdown")
	require.NoError(t, err)
	assert.Equal(t, ModeMarkdown, got)

	_, err = ParseMode("html")
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, ModeText, ModeMarkdown.Toggle())
	assert.Equal(t, ModeMarkdown, ModeText.Toggle())
}

func TestBlockText(t *testing.T) {
	out, err := Block("# Title\n\n**bold**  \n\n", ModeText, 80)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n**bold**\n", out)
}

func TestBlockMarkdown(t *testing.T) {
	text := "# Title\n\nSome **bold** words."
	out, err := Block(text, ModeMarkdown, 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.NotEqual(t, text, out)

	again, err := Block(text, ModeMarkdown, 80)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestBlockUnknownMode(t *testing.T) {
	_, err := Block("x", Mode("html"), 80)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	err := &schema.ValidationError{Issues: []schema.Issue{
		{Code: schema.CodeMissingField, Path: []string{"tool_choice", "function_name"}, Message: "field \"function_name\" is required"},
		{Code: schema.CodeInvalidValue, Path: []string{"name"}, Message: "field \"name\" must not be empty"},
	}}

	out := Report("prompt.yaml", err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "prompt.yaml")
	assert.Contains(t, lines[1], "tool_choice.function_name")
	assert.Contains(t, lines[1], "[missing_field]")
	assert.Contains(t, lines[2], "[invalid_value]")

	out = Report("prompt.yaml", errors.New("permission denied"))
	assert.Contains(t, out, "permission denied")
}

func TestReportOK(t *testing.T) {
	assert.Contains(t, ReportOK("a.json", "zero_or_more"), "a.json (zero_or_more)")
	assert.Contains(t, ReportOK("a.json", ""), "a.json")
}
