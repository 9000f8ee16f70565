package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/model"
)

func newAddCommand() *cobra.Command {
	var repoDir, method, date string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Record a transaction from a phrase like \"corte de cabelo 50\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model.Method(method)
			if !m.Valid() {
				return fmt.Errorf("unknown method %q (manual or voice)", method)
			}

			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			when, err := p.parseDay(date)
			if err != nil {
				return err
			}
			cats, err := p.categories()
			if err != nil {
				return err
			}

			txn, parsed, err := p.record(cats, strings.Join(args, " "), when, m)
			if err != nil {
				return err
			}
			if err := cats.Save(p.root); err != nil {
				return err
			}
			if err := p.commit(fmt.Sprintf("add: %s %s %s", txn.ID, txn.Type, txn.Amount.StringFixed(2))); err != nil {
				return err
			}

			p.log.Debug().Str("id", txn.ID).Float64("confidence", parsed.Confidence).Msg("transaction added")
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s  (confidence %.1f)\n",
				txn.ID, txn.Type, formatMoney(txn.Amount), txn.Category, parsed.Confidence)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&method, "method", string(model.MethodManual), "how the phrase was captured: manual or voice")
	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (default today)")
	return cmd
}
