package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/isaacphi/promptcheck/internal/schema"
)

// Report describes why source failed. Validation errors list one line per
// issue; other errors are printed as is.
func Report(source string, err error) string {
	var b strings.Builder
	b.WriteString(failStyle.Render("✗ "+source) + "\n")

	var verr *schema.ValidationError
	if !errors.As(err, &verr) || verr == nil {
		b.WriteString(issueStyle.Render(err.Error()) + "\n")
		return b.String()
	}

	for _, issue := range verr.Issues {
		line := fmt.Sprintf("%s %s %s",
			pathStyle.Render(issue.PathString()),
			issue.Message,
			codeStyle.Render("["+string(issue.Code)+"]"),
		)
		b.WriteString(issueStyle.Render(line) + "\n")
	}
	return b.String()
}

// ReportOK is the line printed for a source that passed.
func ReportOK(source, detail string) string {
	line := "✓ " + source
	if detail != "" {
		line += " (" + detail + ")"
	}
	return okStyle.Render(line) + "\n"
}
