package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/ledger"
)

func newListCommand() *cobra.Command {
	var repoDir, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions (current month by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}

			now := p.now()
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, p.loc)
			end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc).AddDate(0, 0, 1)
			if from != "" {
				if start, err = time.ParseInLocation(time.DateOnly, from, p.loc); err != nil {
					return fmt.Errorf("invalid --from %q: %w", from, err)
				}
			}
			if to != "" {
				last, err := time.ParseInLocation(time.DateOnly, to, p.loc)
				if err != nil {
					return fmt.Errorf("invalid --to %q: %w", to, err)
				}
				end = last.AddDate(0, 0, 1)
			}

			txns, err := p.ledger.Range(start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				fmt.Fprintln(out, "No transactions.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, t := range txns {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.In(p.loc).Format("02/01/2006"), t.Type, formatMoney(t.Amount), t.Category, shorten(t.Description, 40))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			sum := ledger.Summarize(txns, now, p.loc)
			fmt.Fprintf(out, "\n%d transactions, net %s\n", sum.Count, formatMoney(sum.Balance))
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD (inclusive)")
	return cmd
}
