package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/categories"
	"github.com/caixa-dev/caixa/internal/config"
	"github.com/caixa-dev/caixa/internal/gitops"
	"github.com/caixa-dev/caixa/internal/ledger"
	"github.com/caixa-dev/caixa/internal/logger"
	"github.com/caixa-dev/caixa/internal/model"
	"github.com/caixa-dev/caixa/internal/nlp"
)

// rejectMessage is shown when text cannot be turned into a transaction.
const rejectMessage = "Não foi possível interpretar a transação. Tente incluir o valor."

var errRejected = errors.New(rejectMessage)

// project bundles what a command needs to work on one caixa directory.
type project struct {
	root   string
	cfg    *config.Config
	loc    *time.Location
	log    zerolog.Logger
	ledger *ledger.Service
	parser *nlp.Parser
}

// openProject loads caixa.yaml from repoDir and wires the services. The
// command's context receives a logger at the configured level.
func openProject(cmd *cobra.Command, repoDir string) (*project, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadRepo(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a caixa project (run caixa init): %w", root, err)
		}
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log := logger.WithFields(logger.New(cfg.Log.Level), map[string]any{"business": cfg.Business.Name})
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	vocab, err := loadVocabulary(root, cfg, log)
	if err != nil {
		return nil, err
	}

	return &project{
		root:   root,
		cfg:    cfg,
		loc:    loc,
		log:    log,
		ledger: ledger.NewService(root, cfg.Business.ID),
		parser: nlp.New(vocab, nlp.WithAmbiguousType(cfg.Parser.AmbiguousType)),
	}, nil
}

func loadVocabulary(root string, cfg *config.Config, log zerolog.Logger) (nlp.Vocabulary, error) {
	if cfg.Parser.Vocabulary == "" {
		return nlp.DefaultVocabulary(), nil
	}
	path := cfg.Parser.Vocabulary
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	vocab, err := nlp.LoadVocabulary(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("vocabulary file missing, using built-in vocabulary")
		return nlp.DefaultVocabulary(), nil
	}
	return vocab, err
}

func (p *project) now() time.Time {
	return time.Now().In(p.loc)
}

// onDay places a transaction on the given civil date. Today keeps the
// current time; other days start at midnight.
func (p *project) onDay(year int, month time.Month, day int) time.Time {
	now := p.now()
	if now.Year() == year && now.Month() == month && now.Day() == day {
		return now
	}
	return time.Date(year, month, day, 0, 0, 0, 0, p.loc)
}

// parseDay reads a YYYY-MM-DD flag value. Empty means now.
func (p *project) parseDay(s string) (time.Time, error) {
	if s == "" {
		return p.now(), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return p.onDay(d.Year(), d.Month(), d.Day()), nil
}

func (p *project) categories() (*categories.Service, error) {
	return categories.Load(p.root)
}

// record parses text and stores the result, counting its category.
func (p *project) record(cats *categories.Service, text string, date time.Time, method model.Method) (model.Transaction, *model.ParsedTransaction, error) {
	parsed := p.parser.Parse(text)
	if !nlp.Validate(parsed) {
		return model.Transaction{}, parsed, errRejected
	}

	txn, err := p.ledger.Add(ledger.AddParams{
		Type:        parsed.Type,
		Amount:      parsed.Amount,
		Date:        date,
		Description: parsed.Description,
		Category:    parsed.Category,
		Method:      method,
	})
	if err != nil {
		return model.Transaction{}, parsed, fmt.Errorf("saving transaction: %w", err)
	}
	cats.Increment(txn.Category, txn.Type)
	return txn, parsed, nil
}

// commit records every pending change in git when auto-commit is on.
func (p *project) commit(message string) error {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return nil
	}
	changed, err := gitops.HasChanges(p.root)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	hash, err := gitops.CommitAll(p.root, message, gitops.Author{
		Name:  p.cfg.Git.AuthorName,
		Email: p.cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	p.log.Debug().Str("commit", hash).Str("message", message).Msg("committed")
	return nil
}

// formatMoney renders an amount the Brazilian way: R$ 1.234,50.
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "R$ " + b.String() + "," + frac
}

// parseAmount accepts both 12.50 and 12,50.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
