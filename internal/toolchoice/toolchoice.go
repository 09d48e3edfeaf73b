// Package toolchoice defines the prompt tool-choice directive and its contract.
package toolchoice

import (
	"encoding/json"
	"fmt"
)

// Type is the discriminator of a tool choice.
type Type string

const (
	TypeNone             Type = "none"
	TypeZeroOrMore       Type = "zero_or_more"
	TypeOneOrMore        Type = "one_or_more"
	TypeSpecificFunction Type = "specific_function"
)

// Types lists every tag in declaration order.
func Types() []Type {
	return []Type{TypeNone, TypeZeroOrMore, TypeOneOrMore, TypeSpecificFunction}
}

// ToolChoice constrains which tools a model may invoke. The set of
// implementations is closed: None, ZeroOrMore, OneOrMore and SpecificFunction.
type ToolChoice interface {
	Type() Type
	isToolChoice()
}

// None forbids tool calls.
type None struct{}

// ZeroOrMore lets the model call any number of tools.
type ZeroOrMore struct{}

// OneOrMore requires at least one tool call.
type OneOrMore struct{}

// SpecificFunction requires a call to exactly the named function.
type SpecificFunction struct {
	FunctionName string `json:"function_name" validate:"required" jsonschema:"minLength=1,description=Name of the function the model must call"`
}

func (None) Type() Type             { return TypeNone }
func (ZeroOrMore) Type() Type       { return TypeZeroOrMore }
func (OneOrMore) Type() Type        { return TypeOneOrMore }
func (SpecificFunction) Type() Type { return TypeSpecificFunction }

func (None) isToolChoice()             {}
func (ZeroOrMore) isToolChoice()       {}
func (OneOrMore) isToolChoice()        {}
func (SpecificFunction) isToolChoice() {}

// Default is the choice substituted by callers that fall back on invalid input.
var Default ToolChoice = ZeroOrMore{}

type wire struct {
	Type         Type   `json:"type"`
	FunctionName string `json:"function_name,omitempty"`
}

func (c None) MarshalJSON() ([]byte, error)       { return json.Marshal(wire{Type: c.Type()}) }
func (c ZeroOrMore) MarshalJSON() ([]byte, error) { return json.Marshal(wire{Type: c.Type()}) }
func (c OneOrMore) MarshalJSON() ([]byte, error)  { return json.Marshal(wire{Type: c.Type()}) }

func (c SpecificFunction) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Type: c.Type(), FunctionName: c.FunctionName})
}

// Describe renders a short human-readable form, e.g. "specific_function(lookup_weather)".
func Describe(c ToolChoice) string {
	return Visit[string](c, describer{})
}

type describer struct{}

func (describer) None(None) string             { return string(TypeNone) }
func (describer) ZeroOrMore(ZeroOrMore) string { return string(TypeZeroOrMore) }
func (describer) OneOrMore(OneOrMore) string   { return string(TypeOneOrMore) }
func (describer) SpecificFunction(c SpecificFunction) string {
	return fmt.Sprintf("%s(%s)", TypeSpecificFunction, c.FunctionName)
}
