package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/ledger"
	"github.com/caixa-dev/caixa/internal/model"
)

func newEditCommand() *cobra.Command {
	var repoDir, amount, category, typ, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Correct a stored transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch ledger.Patch
			flags := cmd.Flags()
			if flags.Changed("amount") {
				d, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &d
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("type") {
				t := model.TxnType(typ)
				if !t.Valid() {
					return fmt.Errorf("unknown type %q (income or expense)", typ)
				}
				patch.Type = &t
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if patch == (ledger.Patch{}) {
				return errors.New("nothing to change: pass --amount, --category, --type or --description")
			}

			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			before, err := p.ledger.Get(args[0])
			if err != nil {
				return err
			}
			after, err := p.ledger.Update(args[0], patch)
			if err != nil {
				return err
			}

			if before.Category != after.Category || before.Type != after.Type {
				cats, err := p.categories()
				if err != nil {
					return err
				}
				cats.Decrement(before.Category, before.Type)
				cats.Increment(after.Category, after.Type)
				if err := cats.Save(p.root); err != nil {
					return err
				}
			}

			if err := p.commit("edit: " + after.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n", after.ID, after.Type, formatMoney(after.Amount), after.Category)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&amount, "amount", "", "new amount, e.g. 35,50")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&typ, "type", "", "income or expense")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}
