package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/model"
)

func newCategoriesCommand() *cobra.Command {
	var repoDir, typ string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories by usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			cats, err := p.categories()
			if err != nil {
				return err
			}

			list := cats.All()
			if typ != "" {
				t := model.TxnType(typ)
				if !t.Valid() {
					return fmt.Errorf("unknown type %q (income or expense)", typ)
				}
				list = cats.ByType(t)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tUSES\tDEFAULT")
			for _, c := range list {
				def := ""
				if c.IsDefault {
					def = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Type, c.UsageCount, def)
			}
			return tw.Flush()
		},
	}
	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&typ, "type", "", "only income or expense categories")
	return cmd
}
