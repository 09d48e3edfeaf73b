package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/isaacphi/promptcheck/internal/config"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
	"github.com/spf13/cobra"
)

var (
	strictFlag bool
	configFlag bool

	SchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the tool-choice JSON Schema",
		Long:  "Print the JSON Schema of the tool-choice contract, or of the configuration file with --config.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict := strictFlag || appState.Get().Config.Contract.Strict
			return writeSchema(cmd.OutOrStdout(), configFlag, strict)
		},
	}
)

func init() {
	SchemaCmd.Flags().BoolVar(&strictFlag, "strict", false, "Disallow properties no variant declares")
	SchemaCmd.Flags().BoolVar(&configFlag, "config", false, "Print the configuration schema instead")
}

func writeSchema(out io.Writer, forConfig, strict bool) error {
	var doc any = toolchoice.JSONSchema(strict)
	if forConfig {
		s, err := config.GenerateJSONSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}
		doc = s
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
