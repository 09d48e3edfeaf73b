package prompt

import (
	"fmt"
	"strings"

	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/isaacphi/promptcheck/internal/schema"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

// CodeUnknownFunction marks a specific_function choice naming a tool the
// prompt does not declare.
const CodeUnknownFunction schema.Code = "unknown_function"

const toolChoiceField = "tool_choice"

// Validate checks a whole prompt and returns its tool choice. A prompt without
// a tool choice gets toolchoice.Default. Every problem found is reported in a
// single *schema.ValidationError. Strict also rejects unknown top-level keys.
func Validate(p domain.Prompt, strict bool) (toolchoice.ToolChoice, error) {
	errs := []*schema.ValidationError{schema.Rules(p)}
	if strict {
		errs = append(errs, checkUnknown(p.Unknown))
	}

	choice := toolchoice.Default
	if p.ToolChoice != nil {
		res := toolchoice.Contract(strict).Validate(p.ToolChoice)
		if res.OK() {
			choice = res.Value
			errs = append(errs, checkDeclared(choice, p.Tools))
		} else {
			errs = append(errs, res.Err.Prefix(toolChoiceField))
		}
	}

	if err := schema.Merge(errs...); err != nil {
		return nil, err
	}
	return choice, nil
}

// checkDeclared is skipped for prompts without tools, which may rely on tools
// supplied at call time.
func checkDeclared(choice toolchoice.ToolChoice, tools []domain.Tool) *schema.ValidationError {
	fn, ok := choice.(toolchoice.SpecificFunction)
	if !ok || len(tools) == 0 {
		return nil
	}

	names := make([]string, len(tools))
	for i, tool := range tools {
		if tool.Name == fn.FunctionName {
			return nil
		}
		names[i] = tool.Name
	}

	expected := "{" + strings.Join(names, ", ") + "}"
	return &schema.ValidationError{Issues: []schema.Issue{{
		Code:     CodeUnknownFunction,
		Path:     []string{toolChoiceField, "function_name"},
		Message:  fmt.Sprintf("function %q is not declared in tools %s", fn.FunctionName, expected),
		Expected: expected,
		Received: fn.FunctionName,
	}}}
}

func checkUnknown(keys []string) *schema.ValidationError {
	if len(keys) == 0 {
		return nil
	}
	issues := make([]schema.Issue, len(keys))
	for i, key := range keys {
		issues[i] = schema.Issue{
			Code:    schema.CodeUnrecognizedField,
			Path:    []string{key},
			Message: fmt.Sprintf("unrecognized field %q", key),
		}
	}
	return &schema.ValidationError{Issues: issues}
}
