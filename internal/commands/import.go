package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/categories"
	"github.com/caixa-dev/caixa/internal/importer"
)

func newImportCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Record every phrase in the files under import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			return runImport(cmd, p)
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}

func runImport(cmd *cobra.Command, p *project) error {
	out := cmd.OutOrStdout()

	files, err := importer.Scan(p.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	cats, err := p.categories()
	if err != nil {
		return err
	}

	registry := importer.DefaultRegistry()
	var added, rejected, failed int
	for _, f := range files {
		n, r, err := importFile(cmd, p, registry, cats, f)
		added += n
		rejected += r
		if err != nil {
			failed++
			p.log.Error().Err(err).Str("file", f.Name).Msg("import failed, file left in place")
			fmt.Fprintf(out, "%s: %v\n", f.Name, err)
			continue
		}
		if err := importer.MarkProcessed(p.root, f.Name); err != nil {
			return err
		}
	}

	if err := cats.Save(p.root); err != nil {
		return err
	}
	if err := p.commit(fmt.Sprintf("import: %d transactions from %d files", added, len(files)-failed)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d transactions, rejected %d lines.\n", added, rejected)
	if failed > 0 {
		return fmt.Errorf("%d of %d import files could not be read", failed, len(files))
	}
	return nil
}

// importFile records each utterance in f. Unparseable phrases are
// reported and skipped; only read errors fail the file.
func importFile(cmd *cobra.Command, p *project, registry *importer.Registry, cats *categories.Service, f importer.FileInfo) (added, rejected int, err error) {
	src := registry.Get(f.Format)
	if src == nil {
		return 0, 0, fmt.Errorf("no importer for format %q", f.Format)
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	utterances, err := src.Read(fh)
	fh.Close()
	if err != nil {
		return 0, 0, err
	}

	out := cmd.OutOrStdout()
	for _, u := range utterances {
		when := p.now()
		if !u.Date.IsZero() {
			when = p.onDay(u.Date.Year(), u.Date.Month(), u.Date.Day())
		}

		txn, _, err := p.record(cats, u.Text, when, u.Method)
		if errors.Is(err, errRejected) {
			rejected++
			p.log.Warn().Str("file", f.Name).Int("line", u.Line).Str("text", u.Text).Msg("phrase rejected")
			fmt.Fprintf(out, "%s:%d: rejected %q\n", f.Name, u.Line, u.Text)
			continue
		}
		if err != nil {
			rejected++
			p.log.Warn().Err(err).Str("file", f.Name).Int("line", u.Line).Msg("transaction not saved")
			fmt.Fprintf(out, "%s:%d: %v\n", f.Name, u.Line, err)
			continue
		}
		added++
		fmt.Fprintf(out, "%s:%d: %s %s %s\n", f.Name, u.Line, txn.ID, formatMoney(txn.Amount), txn.Category)
	}
	return added, rejected, nil
}
