package prompt

import (
	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/spf13/cobra"
)

var (
	limitFlag int
	forceFlag bool
	modeFlag  string
	nameFlag  string
)

var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage stored prompt versions",
}

var addCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Validate a prompt file and store it as a new version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := appState.Get().PromptManager()
		if err != nil {
			return err
		}
		return runAdd(cmd.Context(), manager, cmd.OutOrStdout(), args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored prompt versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := appState.Get().PromptManager()
		if err != nil {
			return err
		}
		return runList(cmd.Context(), manager, cmd.OutOrStdout(), nameFlag, limitFlag)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [version_id]",
	Short: "Show a prompt version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := appState.Get().PromptManager()
		if err != nil {
			return err
		}
		return runShow(cmd.Context(), manager, cmd.OutOrStdout(), args[0], modeFlag)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "rm [version_id]",
	Short: "Delete a prompt version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := appState.Get().PromptManager()
		if err != nil {
			return err
		}
		return runDelete(cmd.Context(), manager, cmd.InOrStdin(), cmd.OutOrStdout(), args[0], forceFlag)
	},
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Limit the number of versions to show (0 for all)")
	listCmd.Flags().StringVar(&nameFlag, "name", "", "Only show versions of this prompt")
	showCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Display mode for the template (markdown, text)")
	deleteCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Delete without confirmation")

	PromptCmd.AddCommand(addCmd, listCmd, showCmd, deleteCmd)
}
