package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixa-dev/caixa/internal/id"
	"github.com/caixa-dev/caixa/internal/model"
)

// FileName is the per-month transaction file.
const FileName = "transactions.csv"

// ErrNotFound is returned for transaction IDs that are not in the ledger.
var ErrNotFound = errors.New("transaction not found")

// Service stores transactions under <root>/YYYY/MM/transactions.csv.
type Service struct {
	repoRoot   string
	businessID string
	now        func() time.Time
}

// NewService creates a ledger Service for one business.
func NewService(repoRoot, businessID string) *Service {
	return &Service{repoRoot: repoRoot, businessID: businessID, now: time.Now}
}

// AddParams holds the fields of a new transaction.
type AddParams struct {
	Type        model.TxnType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Category    string
	Method      model.Method
}

// Add assigns the next ID for the transaction's month, validates the month
// with the new row included, and appends it.
func (s *Service) Add(p AddParams) (model.Transaction, error) {
	year, month := p.Date.Year(), int(p.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return model.Transaction{}, err
	}

	ids := make([]string, len(existing))
	for i, t := range existing {
		ids[i] = t.ID
	}

	method := p.Method
	if method == "" {
		method = model.MethodManual
	}

	txn := model.Transaction{
		ID:          id.FormatTxnID(year, month, id.NextSeq(ids)),
		BusinessID:  s.businessID,
		Type:        p.Type,
		Amount:      p.Amount,
		Date:        p.Date,
		Description: p.Description,
		Category:    p.Category,
		Method:      method,
		CreatedAt:   s.now().Truncate(time.Second),
	}

	if err := check(append(existing, txn)); err != nil {
		return model.Transaction{}, err
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return model.Transaction{}, fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	// An empty file, new or truncated, still needs its header.
	fi, err := f.Stat()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("checking ledger: %w", err)
	}
	if fi.Size() == 0 {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return model.Transaction{}, fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, []model.Transaction{txn}); err != nil {
		return model.Transaction{}, fmt.Errorf("appending transaction: %w", err)
	}
	return txn, nil
}

// ReadMonth reads all transactions for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// Range returns transactions dated in [from, to), oldest first.
func (s *Service) Range(from, to time.Time) ([]model.Transaction, error) {
	if !from.Before(to) {
		return nil, nil
	}

	// Month files are keyed by each row's own offset, so read one month of
	// slack on either side.
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()).AddDate(0, -1, 0)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location()).AddDate(0, 1, 0)

	var out []model.Transaction
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		txns, err := s.ReadMonth(m.Year(), int(m.Month()))
		if err != nil {
			return nil, err
		}
		for _, t := range txns {
			if !t.Date.Before(from) && t.Date.Before(to) {
				out = append(out, t)
			}
		}
	}
	sortTransactions(out)
	return out, nil
}

// All returns every transaction in the ledger, oldest first.
func (s *Service) All() ([]model.Transaction, error) {
	paths, err := filepath.Glob(filepath.Join(s.repoRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", FileName))
	if err != nil {
		return nil, fmt.Errorf("listing ledger files: %w", err)
	}

	var out []model.Transaction
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger %s: %w", path, err)
		}
		txns, err := ReadTransactions(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading ledger %s: %w", path, err)
		}
		out = append(out, txns...)
	}
	sortTransactions(out)
	return out, nil
}

// Get returns the transaction with the given ID.
func (s *Service) Get(txnID string) (model.Transaction, error) {
	txns, i, err := s.locate(txnID)
	if err != nil {
		return model.Transaction{}, err
	}
	return txns[i], nil
}

// Patch lists the fields to change on an existing transaction. Nil fields
// are left alone.
type Patch struct {
	Type        *model.TxnType
	Amount      *decimal.Decimal
	Category    *string
	Description *string
}

// Update applies p to the transaction and rewrites its month file.
func (s *Service) Update(txnID string, p Patch) (model.Transaction, error) {
	txns, i, err := s.locate(txnID)
	if err != nil {
		return model.Transaction{}, err
	}

	t := &txns[i]
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}

	if err := check(txns); err != nil {
		return model.Transaction{}, err
	}
	if err := s.rewrite(txnID, txns); err != nil {
		return model.Transaction{}, err
	}
	return *t, nil
}

// Delete removes the transaction and returns it.
func (s *Service) Delete(txnID string) (model.Transaction, error) {
	txns, i, err := s.locate(txnID)
	if err != nil {
		return model.Transaction{}, err
	}

	removed := txns[i]
	if err := s.rewrite(txnID, slices.Delete(txns, i, i+1)); err != nil {
		return model.Transaction{}, err
	}
	return removed, nil
}

// locate reads the month named by txnID and finds the row's index.
func (s *Service) locate(txnID string) ([]model.Transaction, int, error) {
	year, month, _, err := id.ParseTxnID(txnID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, txnID)
	}

	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return nil, 0, err
	}
	i := slices.IndexFunc(txns, func(t model.Transaction) bool { return t.ID == txnID })
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, txnID)
	}
	return txns, i, nil
}

// rewrite replaces the month file for txnID via a temp file and rename.
func (s *Service) rewrite(txnID string, txns []model.Transaction) error {
	year, month, _, err := id.ParseTxnID(txnID)
	if err != nil {
		return err
	}
	path := s.monthPath(year, month)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".transactions-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTransactions(tmp, txns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", path, err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), FileName)
}

func check(txns []model.Transaction) error {
	verrs := ValidateTransactions(txns)
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func sortTransactions(txns []model.Transaction) {
	slices.SortStableFunc(txns, func(a, b model.Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
