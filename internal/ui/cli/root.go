package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/isaacphi/promptcheck/internal/config"
	configCmd "github.com/isaacphi/promptcheck/internal/ui/cli/config"
	"github.com/isaacphi/promptcheck/internal/ui/cli/convert"
	promptCmd "github.com/isaacphi/promptcheck/internal/ui/cli/prompt"
	schemaCmd "github.com/isaacphi/promptcheck/internal/ui/cli/schema"
	"github.com/isaacphi/promptcheck/internal/ui/cli/validate"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:   "promptcheck",
	Short: "Validate and manage prompt configuration",
	Long: `promptcheck checks prompt files against the tool-choice contract, converts tool
choices to provider formats and keeps a local store of prompt versions.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the root command to use this context
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags for logging
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Prompt store path (overrides dbPath)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Initialize app with logging overrides
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if dbPath != "" {
			overrides.DBPath = &dbPath
		}
		return appState.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		configCmd.ConfigCmd,
		validate.ValidateCmd,
		schemaCmd.SchemaCmd,
		convert.ConvertCmd,
		promptCmd.PromptCmd,
	)
}
