package provider

import (
	"github.com/isaacphi/promptcheck/internal/schema"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

// AnthropicChoice is Anthropic's tool_choice object.
type AnthropicChoice struct {
	Type                   string `json:"type"`
	Name                   string `json:"name,omitempty"`
	DisableParallelToolUse *bool  `json:"disable_parallel_tool_use,omitempty"`
}

type anthropicChoice interface {
	toolChoice() toolchoice.ToolChoice
}

type anthropicNone struct {
	DisableParallelToolUse *bool `json:"disable_parallel_tool_use,omitempty"`
}

type anthropicAuto struct {
	DisableParallelToolUse *bool `json:"disable_parallel_tool_use,omitempty"`
}

type anthropicAny struct {
	DisableParallelToolUse *bool `json:"disable_parallel_tool_use,omitempty"`
}

type anthropicTool struct {
	Name                   string `json:"name" validate:"required" jsonschema:"minLength=1"`
	DisableParallelToolUse *bool  `json:"disable_parallel_tool_use,omitempty"`
}

func (anthropicNone) toolChoice() toolchoice.ToolChoice { return toolchoice.None{} }
func (anthropicAuto) toolChoice() toolchoice.ToolChoice { return toolchoice.ZeroOrMore{} }
func (anthropicAny) toolChoice() toolchoice.ToolChoice  { return toolchoice.OneOrMore{} }
func (c anthropicTool) toolChoice() toolchoice.ToolChoice {
	return toolchoice.SpecificFunction{FunctionName: c.Name}
}

var anthropicSchema = schema.Bind[anthropicChoice](schema.Union[anthropicChoice]("type",
	schema.Case("none", func(v anthropicNone) anthropicChoice { return v }),
	schema.Case("auto", func(v anthropicAuto) anthropicChoice { return v }),
	schema.Case("any", func(v anthropicAny) anthropicChoice { return v }),
	schema.Case("tool", func(v anthropicTool) anthropicChoice { return v }),
))

var strictAnthropicSchema = anthropicSchema.Strict()

type anthropicEncoder struct{}

var _ toolchoice.Visitor[AnthropicChoice] = anthropicEncoder{}

func (anthropicEncoder) None(toolchoice.None) AnthropicChoice { return AnthropicChoice{Type: "none"} }
func (anthropicEncoder) ZeroOrMore(toolchoice.ZeroOrMore) AnthropicChoice {
	return AnthropicChoice{Type: "auto"}
}
func (anthropicEncoder) OneOrMore(toolchoice.OneOrMore) AnthropicChoice {
	return AnthropicChoice{Type: "any"}
}
func (anthropicEncoder) SpecificFunction(c toolchoice.SpecificFunction) AnthropicChoice {
	return AnthropicChoice{Type: "tool", Name: c.FunctionName}
}

// ToAnthropic returns the Anthropic tool_choice object for c.
func ToAnthropic(c toolchoice.ToolChoice) AnthropicChoice {
	return toolchoice.Visit[AnthropicChoice](c, anthropicEncoder{})
}

// FromAnthropic validates an Anthropic tool_choice value. The parallel tool
// use flag has no tool-choice equivalent and is dropped.
func FromAnthropic(raw any, strict bool) (toolchoice.ToolChoice, error) {
	raw, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}
	choices := anthropicSchema
	if strict {
		choices = strictAnthropicSchema
	}
	c, err := choices.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.toolChoice(), nil
}
