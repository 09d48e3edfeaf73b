package provider

import (
	"github.com/tmc/langchaingo/llms"

	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

type langChainEncoder struct{}

var _ toolchoice.Visitor[any] = langChainEncoder{}

func (langChainEncoder) None(toolchoice.None) any             { return OpenAINone }
func (langChainEncoder) ZeroOrMore(toolchoice.ZeroOrMore) any { return OpenAIAuto }
func (langChainEncoder) OneOrMore(toolchoice.OneOrMore) any   { return OpenAIRequired }
func (langChainEncoder) SpecificFunction(c toolchoice.SpecificFunction) any {
	return llms.ToolChoice{
		Type:     "function",
		Function: &llms.FunctionReference{Name: c.FunctionName},
	}
}

// LangChainToolChoice returns the value langchaingo forwards as tool_choice.
func LangChainToolChoice(c toolchoice.ToolChoice) any {
	return toolchoice.Visit[any](c, langChainEncoder{})
}

// LangChainTools converts prompt tools into langchaingo function tools.
func LangChainTools(tools []domain.Tool) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, tool := range tools {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return out
}

// LangChainOptions builds the call options for a prompt's tools and tool choice.
func LangChainOptions(c toolchoice.ToolChoice, tools []domain.Tool) []llms.CallOption {
	var opts []llms.CallOption
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(LangChainTools(tools)))
	}
	if c != nil {
		opts = append(opts, llms.WithToolChoice(LangChainToolChoice(c)))
	}
	return opts
}
