package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/nlp"
)

func newParseCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "parse <text...>",
		Short: "Show how a phrase would be read, without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := nlp.New(nlp.DefaultVocabulary())
			p, err := openProject(cmd, repoDir)
			switch {
			case err == nil:
				parser = p.parser
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}

			parsed := parser.Parse(strings.Join(args, " "))
			if !nlp.Validate(parsed) {
				return errRejected
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "type:        %s\n", parsed.Type)
			fmt.Fprintf(out, "amount:      %s\n", formatMoney(parsed.Amount))
			fmt.Fprintf(out, "category:    %s\n", parsed.Category)
			fmt.Fprintf(out, "description: %s\n", parsed.Description)
			fmt.Fprintf(out, "confidence:  %.1f\n", parsed.Confidence)
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}
