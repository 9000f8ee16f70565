package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/accounts"
	"github.com/caixa-dev/caixa/internal/model"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Bank accounts, cards, wallets and cash on hand",
	}
	cmd.AddCommand(
		newAccountsListCommand(),
		newAccountsAddCommand(),
		newAccountsEditCommand(),
		newAccountsDeleteCommand(),
	)
	return cmd
}

func accountType(s string) (model.AccountType, error) {
	t := model.AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q (bank, card, wallet or cash)", s)
	}
	return t, nil
}

func newAccountsListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show accounts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			accts, err := accounts.Load(p.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			list := accts.List()
			if len(list) == 0 {
				fmt.Fprintln(out, "No accounts.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBALANCE")
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, formatMoney(a.Balance))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %s\n", formatMoney(accts.Total()))
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}

func newAccountsAddCommand() *cobra.Command {
	var repoDir, typ, balance string

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an account",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := accountType(typ)
			if err != nil {
				return err
			}
			amount, err := parseAmount(balance)
			if err != nil {
				return err
			}

			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			accts, err := accounts.Load(p.root)
			if err != nil {
				return err
			}
			acct, err := accts.Add(accounts.AddParams{Name: strings.Join(args, " "), Type: t, Balance: amount})
			if err != nil {
				return err
			}
			if err := accts.Save(p.root); err != nil {
				return err
			}
			if err := p.commit("accounts: add " + acct.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n", acct.ID, acct.Name, acct.Type, formatMoney(acct.Balance))
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&typ, "type", string(model.AccountBank), "bank, card, wallet or cash")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance, e.g. 1250,40")
	return cmd
}

func newAccountsEditCommand() *cobra.Command {
	var repoDir, name, typ, balance string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename an account or correct its type or balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch accounts.Patch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				t, err := accountType(typ)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if flags.Changed("balance") {
				d, err := parseAmount(balance)
				if err != nil {
					return err
				}
				patch.Balance = &d
			}
			if patch == (accounts.Patch{}) {
				return errors.New("nothing to change: pass --name, --type or --balance")
			}

			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			accts, err := accounts.Load(p.root)
			if err != nil {
				return err
			}
			acct, err := accts.Update(args[0], patch)
			if err != nil {
				return err
			}
			if err := accts.Save(p.root); err != nil {
				return err
			}
			if err := p.commit("accounts: edit " + acct.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n", acct.ID, acct.Name, acct.Type, formatMoney(acct.Balance))
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&typ, "type", "", "bank, card, wallet or cash")
	cmd.Flags().StringVar(&balance, "balance", "", "new balance")
	return cmd
}

func newAccountsDeleteCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			accts, err := accounts.Load(p.root)
			if err != nil {
				return err
			}
			removed, err := accts.Delete(args[0])
			if err != nil {
				return err
			}
			if err := accts.Save(p.root); err != nil {
				return err
			}
			if err := p.commit("accounts: delete " + removed.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", removed.Name)
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}
