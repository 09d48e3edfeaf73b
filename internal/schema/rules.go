package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every contract; validator.Validate is safe for
// concurrent use once configured.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _ := parseTag(sf)
		return name
	})
	return v
}

// Rules checks the `validate` struct tags of v and reports failures as issues.
// It returns nil when v satisfies every rule.
func Rules(v any) *ValidationError {
	return newError(checkRules(v))
}

func checkRules(v any) []Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return []Issue{{
			Code:     CodeInvalidType,
			Message:  fmt.Sprintf("expected object, received %s", kindOf(v)),
			Expected: "object",
			Received: kindOf(v),
		}}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Code: CodeInvalidValue, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		expected := fe.Tag()
		if fe.Param() != "" {
			expected += "=" + fe.Param()
		}
		issues = append(issues, Issue{
			Code:     CodeInvalidValue,
			Path:     namespacePath(fe.Namespace()),
			Message:  ruleMessage(fe),
			Expected: expected,
			Received: received(fe.Value()),
		})
	}
	return issues
}

// namespacePath turns "Prompt.tools[1].name" into [tools 1 name].
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	var path []string
	for _, part := range parts {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					path = append(path, part)
				}
				break
			}
			if open > 0 {
				path = append(path, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				path = append(path, part[open:])
				break
			}
			path = append(path, part[open+1:open+end])
			part = part[open+end+1:]
		}
	}
	return path
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %q must not be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("field %q must be one of {%s}", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		if fe.Param() != "" {
			return fmt.Sprintf("field %q must not repeat %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("field %q must not contain duplicates", fe.Field())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("field %q fails rule %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %q fails rule %s", fe.Field(), fe.Tag())
}

func received(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case bool, int, int64, float64:
		return fmt.Sprint(v)
	}
	return kindOf(v)
}
