package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code classifies a validation issue.
type Code string

const (
	CodeUnrecognizedVariant Code = "unrecognized_variant"
	CodeMissingField        Code = "missing_field"
	CodeInvalidType         Code = "invalid_type"
	CodeUnrecognizedField   Code = "unrecognized_field"
	CodeInvalidValue        Code = "invalid_value"
)

// Issue describes one reason a value failed validation.
type Issue struct {
	Code     Code     `json:"code"`
	Path     []string `json:"path"`
	Message  string   `json:"message"`
	Expected string   `json:"expected,omitempty"`
	Received string   `json:"received,omitempty"`
}

// PathString renders the path in dotted form, "(root)" for the value itself.
func (i Issue) PathString() string {
	if len(i.Path) == 0 {
		return "(root)"
	}
	return strings.Join(i.Path, ".")
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.PathString(), i.Message)
}

// ValidationError is returned when a value does not satisfy a contract.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any issue carries the given code.
func (e *ValidationError) Has(code Code) bool {
	if e == nil {
		return false
	}
	for _, issue := range e.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// Prefix returns a copy of e with every issue path rooted under path.
func (e *ValidationError) Prefix(path ...string) *ValidationError {
	if e == nil {
		return nil
	}
	out := &ValidationError{Issues: make([]Issue, len(e.Issues))}
	for i, issue := range e.Issues {
		p := make([]string, 0, len(path)+len(issue.Path))
		p = append(p, path...)
		p = append(p, issue.Path...)
		issue.Path = p
		out.Issues[i] = issue
	}
	return out
}

// Merge combines the issues of several errors. It returns nil when there are none.
func Merge(errs ...*ValidationError) *ValidationError {
	var issues []Issue
	for _, err := range errs {
		if err != nil {
			issues = append(issues, err.Issues...)
		}
	}
	return newError(issues)
}

// AsValidationError unwraps err to a *ValidationError if it holds one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}

func newError(issues []Issue) *ValidationError {
	if len(issues) == 0 {
		return nil
	}
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PathString() < sorted[j].PathString()
	})
	return &ValidationError{Issues: sorted}
}
