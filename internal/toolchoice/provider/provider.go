// Package provider converts tool choices to and from model provider wire formats.
package provider

import (
	"fmt"
	"sort"

	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

const (
	Phoenix   = "phoenix"
	OpenAI    = "openai"
	Anthropic = "anthropic"
)

type codec struct {
	encode func(toolchoice.ToolChoice) any
	decode func(raw any, strict bool) (toolchoice.ToolChoice, error)
}

var codecs = map[string]codec{
	Phoenix: {
		encode: func(c toolchoice.ToolChoice) any { return c },
		decode: func(raw any, strict bool) (toolchoice.ToolChoice, error) {
			return toolchoice.Contract(strict).Parse(raw)
		},
	},
	OpenAI: {encode: ToOpenAI, decode: FromOpenAI},
	Anthropic: {
		encode: func(c toolchoice.ToolChoice) any { return ToAnthropic(c) },
		decode: FromAnthropic,
	},
}

// Names lists the supported providers.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode converts c into the named provider's wire value.
func Encode(name string, c toolchoice.ToolChoice) (any, error) {
	cd, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (supported: %v)", name, Names())
	}
	return cd.encode(c), nil
}

// Decode validates a provider wire value into a tool choice. Strict rejects
// fields the provider's format does not declare.
func Decode(name string, raw any, strict bool) (toolchoice.ToolChoice, error) {
	cd, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (supported: %v)", name, Names())
	}
	return cd.decode(raw, strict)
}
