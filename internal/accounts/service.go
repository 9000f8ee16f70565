package accounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa-dev/caixa/internal/model"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrDuplicateName = errors.New("an account with this name already exists")
)

// Service manages the accounts of one project.
type Service struct {
	accts []model.Account
	now   func() time.Time
}

// NewService creates a Service from a slice of accounts.
func NewService(accts []model.Account) *Service {
	return &Service{accts: accts, now: time.Now}
}

// Path returns the location of accounts.csv under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "accounts.csv")
}

// Load reads accounts.csv from a repo root. A missing file yields an empty
// Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	return NewService(accts), nil
}

// List returns all accounts, newest first.
func (s *Service) List() []model.Account {
	out := make([]model.Account, len(s.accts))
	copy(out, s.accts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	i := s.find(id)
	if i < 0 {
		return model.Account{}, false
	}
	return s.accts[i], true
}

// Total sums every account balance.
func (s *Service) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.accts {
		total = total.Add(a.Balance)
	}
	return total
}

// AddParams holds the fields of a new account. An empty Type means bank.
type AddParams struct {
	Name    string
	Type    model.AccountType
	Balance decimal.Decimal
}

// Add creates an account with a fresh ID.
func (s *Service) Add(p AddParams) (model.Account, error) {
	acct := model.Account{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(p.Name),
		Type:      p.Type,
		Balance:   p.Balance,
		CreatedAt: s.now().Truncate(time.Second),
	}
	if acct.Type == "" {
		acct.Type = model.AccountBank
	}
	if err := s.check(acct); err != nil {
		return model.Account{}, err
	}
	s.accts = append(s.accts, acct)
	return acct, nil
}

// Patch lists the fields to change. Nil fields are left alone.
type Patch struct {
	Name    *string
	Type    *model.AccountType
	Balance *decimal.Decimal
}

// Update applies p to the account and returns the result.
func (s *Service) Update(id string, p Patch) (model.Account, error) {
	i := s.find(id)
	if i < 0 {
		return model.Account{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	acct := s.accts[i]
	if p.Name != nil {
		acct.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		acct.Type = *p.Type
	}
	if p.Balance != nil {
		acct.Balance = *p.Balance
	}
	if err := s.check(acct); err != nil {
		return model.Account{}, err
	}
	s.accts[i] = acct
	return acct, nil
}

// Delete removes the account and returns it.
func (s *Service) Delete(id string) (model.Account, error) {
	i := s.find(id)
	if i < 0 {
		return model.Account{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := s.accts[i]
	s.accts = append(s.accts[:i], s.accts[i+1:]...)
	return removed, nil
}

// Save writes accounts/accounts.csv.
func (s *Service) Save(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

func (s *Service) find(id string) int {
	for i, a := range s.accts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// check validates acct against the other accounts. Names are unique.
func (s *Service) check(acct model.Account) error {
	if acct.Name == "" {
		return errors.New("account name is required")
	}
	if !acct.Type.Valid() {
		return fmt.Errorf("unknown account type %q (bank, card, wallet or cash)", acct.Type)
	}
	for _, other := range s.accts {
		if other.ID != acct.ID && other.Name == acct.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, acct.Name)
		}
	}
	return nil
}
