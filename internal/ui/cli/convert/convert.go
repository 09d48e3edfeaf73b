package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/isaacphi/promptcheck/internal/render"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
	"github.com/isaacphi/promptcheck/internal/toolchoice/provider"
	"github.com/spf13/cobra"
)

var (
	providerFlag string
	reverseFlag  bool
	strictFlag   bool

	ConvertCmd = &cobra.Command{
		Use:   "convert FILE|-",
		Short: "Convert a tool choice to or from a provider format",
		Long: `Read a tool choice as JSON and print the named provider's tool_choice value.
With --reverse, read a provider value and print the tool choice it stands for.
Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			strict := strictFlag || appState.Get().Config.Contract.Strict
			return runConvert(in, cmd.OutOrStdout(), args[0], providerFlag, reverseFlag, strict)
		},
	}
)

func init() {
	ConvertCmd.Flags().StringVarP(&providerFlag, "provider", "p", provider.OpenAI, fmt.Sprintf("Target provider %v", provider.Names()))
	ConvertCmd.Flags().BoolVarP(&reverseFlag, "reverse", "r", false, "Convert a provider value back to a tool choice")
	ConvertCmd.Flags().BoolVar(&strictFlag, "strict", false, "Reject tool-choice fields no variant declares")
}

func runConvert(in io.Reader, out io.Writer, source, providerName string, reverse, strict bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var result any
	if reverse {
		result, err = provider.Decode(providerName, json.RawMessage(data), strict)
	} else {
		var choice toolchoice.ToolChoice
		choice, err = toolchoice.Contract(strict).Parse(json.RawMessage(data))
		if err == nil {
			result, err = provider.Encode(providerName, choice)
		}
	}
	if err != nil {
		fmt.Fprint(out, render.Report(source, err))
		return fmt.Errorf("conversion failed")
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
