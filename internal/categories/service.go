package categories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/caixa-dev/caixa/internal/model"
)

type key struct {
	name string
	typ  model.TxnType
}

// Service provides in-memory lookup and usage counting over categories.csv.
type Service struct {
	cats  []model.Category
	index map[key]int
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	s := &Service{index: make(map[key]int, len(cats))}
	for _, c := range cats {
		if _, dup := s.index[key{c.Name, c.Type}]; dup {
			continue
		}
		s.index[key{c.Name, c.Type}] = len(s.cats)
		s.cats = append(s.cats, c)
	}
	return s
}

// Path returns the location of categories.csv under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "categories", "categories.csv")
}

// Load reads categories.csv from a repo root. A missing file yields an
// empty Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories, most used first.
func (s *Service) All() []model.Category {
	out := make([]model.Category, len(s.cats))
	copy(out, s.cats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsageCount > out[j].UsageCount
	})
	return out
}

// Get returns a category by name and type.
func (s *Service) Get(name string, typ model.TxnType) (model.Category, bool) {
	i, ok := s.index[key{name, typ}]
	if !ok {
		return model.Category{}, false
	}
	return s.cats[i], true
}

// ByType returns the categories of one type, most used first.
func (s *Service) ByType(typ model.TxnType) []model.Category {
	var out []model.Category
	for _, c := range s.All() {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// Increment bumps the usage count, creating the category when it is new.
func (s *Service) Increment(name string, typ model.TxnType) model.Category {
	k := key{name, typ}
	i, ok := s.index[k]
	if !ok {
		i = len(s.cats)
		s.index[k] = i
		s.cats = append(s.cats, model.Category{Name: name, Type: typ})
	}
	s.cats[i].UsageCount++
	return s.cats[i]
}

// Decrement lowers the usage count, never below zero. Unknown categories
// are ignored.
func (s *Service) Decrement(name string, typ model.TxnType) {
	i, ok := s.index[key{name, typ}]
	if !ok || s.cats[i].UsageCount == 0 {
		return
	}
	s.cats[i].UsageCount--
}

// Save writes categories/categories.csv.
func (s *Service) Save(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
