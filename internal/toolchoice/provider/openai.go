package provider

import (
	"encoding/json"
	"fmt"

	"github.com/isaacphi/promptcheck/internal/schema"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

// OpenAI string modes.
const (
	OpenAINone     = "none"
	OpenAIAuto     = "auto"
	OpenAIRequired = "required"
)

// OpenAIFunctionChoice is OpenAI's object form forcing one function.
type OpenAIFunctionChoice struct {
	Type     string            `json:"type"`
	Function OpenAIFunctionRef `json:"function"`
}

// OpenAIFunctionRef names the forced function.
type OpenAIFunctionRef struct {
	Name string `json:"name" validate:"required" jsonschema:"minLength=1"`
}

func (c OpenAIFunctionChoice) toolChoice() toolchoice.ToolChoice {
	return toolchoice.SpecificFunction{FunctionName: c.Function.Name}
}

// openAIObject is the object half of OpenAI's tool_choice, which is otherwise a string.
type openAIObject interface {
	toolChoice() toolchoice.ToolChoice
}

var openAIObjectSchema = schema.Bind[openAIObject](schema.Union[openAIObject]("type",
	schema.Case("function", func(v OpenAIFunctionChoice) openAIObject { return v }),
))

var strictOpenAIObjectSchema = openAIObjectSchema.Strict()

type openAIEncoder struct{}

var _ toolchoice.Visitor[any] = openAIEncoder{}

func (openAIEncoder) None(toolchoice.None) any             { return OpenAINone }
func (openAIEncoder) ZeroOrMore(toolchoice.ZeroOrMore) any { return OpenAIAuto }
func (openAIEncoder) OneOrMore(toolchoice.OneOrMore) any   { return OpenAIRequired }
func (openAIEncoder) SpecificFunction(c toolchoice.SpecificFunction) any {
	return OpenAIFunctionChoice{Type: "function", Function: OpenAIFunctionRef{Name: c.FunctionName}}
}

// ToOpenAI returns the value OpenAI expects in a request's tool_choice: a string
// mode or an OpenAIFunctionChoice.
func ToOpenAI(c toolchoice.ToolChoice) any {
	return toolchoice.Visit[any](c, openAIEncoder{})
}

// FromOpenAI validates an OpenAI tool_choice value.
func FromOpenAI(raw any, strict bool) (toolchoice.ToolChoice, error) {
	raw, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}

	if mode, ok := raw.(string); ok {
		switch mode {
		case OpenAINone:
			return toolchoice.None{}, nil
		case OpenAIAuto:
			return toolchoice.ZeroOrMore{}, nil
		case OpenAIRequired:
			return toolchoice.OneOrMore{}, nil
		}
		return nil, &schema.ValidationError{Issues: []schema.Issue{{
			Code:     schema.CodeUnrecognizedVariant,
			Message:  fmt.Sprintf("tool_choice must be one of {none, auto, required} or a function object, received %q", mode),
			Expected: "{none, auto, required}",
			Received: mode,
		}}}
	}

	objects := openAIObjectSchema
	if strict {
		objects = strictOpenAIObjectSchema
	}
	obj, err := objects.Parse(raw)
	if err != nil {
		return nil, err
	}
	return obj.toolChoice(), nil
}

// decodeRaw turns JSON bytes into a decoded value and passes others through.
func decodeRaw(raw any) (any, error) {
	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		return raw, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &schema.ValidationError{Issues: []schema.Issue{{
			Code:     schema.CodeInvalidType,
			Message:  fmt.Sprintf("input is not valid JSON: %v", err),
			Expected: "JSON",
			Received: "invalid JSON",
		}}}
	}
	return out, nil
}
