package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			removed, err := p.ledger.Delete(args[0])
			if err != nil {
				return err
			}

			cats, err := p.categories()
			if err != nil {
				return err
			}
			cats.Decrement(removed.Category, removed.Type)
			if err := cats.Save(p.root); err != nil {
				return err
			}

			if err := p.commit("delete: " + removed.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s %s)\n", removed.ID, removed.Category, formatMoney(removed.Amount))
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}
