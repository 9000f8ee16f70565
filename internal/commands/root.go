package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/buildinfo"
	"github.com/caixa-dev/caixa/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "caixa",
		Short:   "Cash-flow tracking for small businesses, one phrase at a time",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Replaced by the project's configured logger once caixa.yaml is read.
			cmd.SetContext(logger.WithContext(cmd.Context(), logger.New(os.Getenv("CAIXA_LOG_LEVEL"))))
		},
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newParseCommand(),
		newAddCommand(),
		newListCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newSummaryCommand(),
		newCategoriesCommand(),
		newAlertsCommand(),
		newImportCommand(),
		newAccountsCommand(),
	)

	return rootCmd
}

func addRepoFlag(cmd *cobra.Command, repoDir *string) {
	cmd.Flags().StringVar(repoDir, "repo", ".", "project directory")
}
