package validate

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/isaacphi/promptcheck/internal/prompt"
	"github.com/isaacphi/promptcheck/internal/render"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
	"github.com/spf13/cobra"
)

var strictFlag bool

var ValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate prompt files",
	Long: `Validate prompt files (.json, .yaml or .yml) against the prompt rules and the
tool-choice contract. Every issue in a file is reported. Exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict := strictFlag || appState.Get().Config.Contract.Strict
		return runValidate(cmd.OutOrStdout(), args, strict)
	},
}

func init() {
	ValidateCmd.Flags().BoolVar(&strictFlag, "strict", false, "Reject tool-choice fields no variant declares")
}

func runValidate(out io.Writer, paths []string, strict bool) error {
	failed := 0
	for _, path := range paths {
		choice, err := validateFile(path, strict)
		if err != nil {
			failed++
			slog.Debug("prompt file failed validation", "path", path, "error", err)
			fmt.Fprint(out, render.Report(path, err))
			continue
		}
		fmt.Fprint(out, render.ReportOK(path, toolchoice.Describe(choice)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d prompt files failed validation", failed, len(paths))
	}
	return nil
}

func validateFile(path string, strict bool) (toolchoice.ToolChoice, error) {
	p, err := prompt.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return prompt.Validate(p, strict)
}
