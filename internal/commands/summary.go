package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/ledger"
)

func newSummaryCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the balance and today's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			txns, err := p.ledger.All()
			if err != nil {
				return err
			}

			sum := ledger.Summarize(txns, p.now(), p.loc)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.cfg.Business.Name)
			fmt.Fprintf(out, "Balance:        %s\n", formatMoney(sum.Balance))
			fmt.Fprintf(out, "Today income:   %s\n", formatMoney(sum.TodayIncome))
			fmt.Fprintf(out, "Today expenses: %s\n", formatMoney(sum.TodayExpense))
			fmt.Fprintf(out, "Transactions:   %d\n", sum.Count)
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}
