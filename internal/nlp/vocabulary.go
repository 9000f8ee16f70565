package nlp

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryRule maps a keyword substring to a category label.
type CategoryRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// NumberWord maps a written-out number to its value.
type NumberWord struct {
	Word  string `yaml:"word"`
	Value int64  `yaml:"value"`
}

// Vocabulary holds the keyword tables the parser matches against.
// Slice order is significant: categories and number words are scanned in
// definition order and the first hit wins.
type Vocabulary struct {
	IncomeKeywords         []string       `yaml:"income_keywords"`
	ExpenseKeywords        []string       `yaml:"expense_keywords"`
	Categories             []CategoryRule `yaml:"categories"`
	NumberWords            []NumberWord   `yaml:"number_words"`
	DefaultIncomeCategory  string         `yaml:"default_income_category"`
	DefaultExpenseCategory string         `yaml:"default_expense_category"`
}

// DefaultVocabulary returns a fresh copy of the built-in Brazilian Portuguese
// tables, tuned for beauty and barber services.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		IncomeKeywords: []string{
			"recebi", "recebido", "venda", "vendido",
			"corte", "barba", "coloração", "coloracao",
			"manicure", "pedicure", "escova",
			"hidratação", "hidratacao", "massagem",
			"depilação", "depilacao",
			"cliente", "pagamento", "entrada", "ganho",
		},
		ExpenseKeywords: []string{
			"paguei", "pago", "comprei", "comprado", "gastei", "gasto",
			"luz", "água", "agua", "aluguel", "internet", "telefone",
			"produto", "produtos", "limpeza", "manutenção", "manutencao",
			"fornecedor", "conta", "despesa", "saída", "saida",
		},
		Categories: []CategoryRule{
			{"corte", "Corte de Cabelo"},
			{"barba", "Barba"},
			{"coloração", "Coloração"},
			{"coloracao", "Coloração"},
			{"manicure", "Manicure"},
			{"pedicure", "Pedicure"},
			{"escova", "Escova"},
			{"hidratação", "Hidratação"},
			{"hidratacao", "Hidratação"},
			{"massagem", "Massagem"},
			{"depilação", "Depilação"},
			{"depilacao", "Depilação"},

			{"luz", "Energia Elétrica"},
			{"água", "Água"},
			{"agua", "Água"},
			{"aluguel", "Aluguel"},
			{"internet", "Internet"},
			{"telefone", "Telefone"},
			{"produto", "Produtos"},
			{"produtos", "Produtos"},
			{"limpeza", "Limpeza"},
			{"manutenção", "Manutenção"},
			{"manutencao", "Manutenção"},
		},
		NumberWords: []NumberWord{
			{"um", 1}, {"uma", 1},
			{"dois", 2}, {"duas", 2},
			{"três", 3}, {"tres", 3},
			{"quatro", 4},
			{"cinco", 5},
			{"seis", 6},
			{"sete", 7},
			{"oito", 8},
			{"nove", 9},
			{"dez", 10},
			{"vinte", 20},
			{"trinta", 30},
			{"quarenta", 40},
			{"cinquenta", 50},
			{"cem", 100},
			{"cento", 100},
		},
		DefaultIncomeCategory:  "Serviços",
		DefaultExpenseCategory: "Despesas Gerais",
	}
}

// Validate checks that the tables are usable by a Parser.
func (v Vocabulary) Validate() error {
	var errs []error
	if len(v.IncomeKeywords) == 0 {
		errs = append(errs, errors.New("income_keywords is empty"))
	}
	if len(v.ExpenseKeywords) == 0 {
		errs = append(errs, errors.New("expense_keywords is empty"))
	}
	if v.DefaultIncomeCategory == "" {
		errs = append(errs, errors.New("default_income_category is empty"))
	}
	if v.DefaultExpenseCategory == "" {
		errs = append(errs, errors.New("default_expense_category is empty"))
	}
	for i, r := range v.Categories {
		if r.Keyword == "" || r.Category == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: keyword and category are required", i))
		}
	}
	for i, w := range v.NumberWords {
		if w.Word == "" || w.Value <= 0 {
			errs = append(errs, fmt.Errorf("number_words[%d]: word must be set and value positive", i))
		}
	}
	return errors.Join(errs...)
}

// normalized returns a deep copy with every keyword lower-cased.
func (v Vocabulary) normalized() Vocabulary {
	out := Vocabulary{
		IncomeKeywords:         lowerAll(v.IncomeKeywords),
		ExpenseKeywords:        lowerAll(v.ExpenseKeywords),
		Categories:             make([]CategoryRule, len(v.Categories)),
		NumberWords:            make([]NumberWord, len(v.NumberWords)),
		DefaultIncomeCategory:  v.DefaultIncomeCategory,
		DefaultExpenseCategory: v.DefaultExpenseCategory,
	}
	for i, r := range v.Categories {
		out.Categories[i] = CategoryRule{Keyword: strings.ToLower(r.Keyword), Category: r.Category}
	}
	for i, w := range v.NumberWords {
		out.NumberWords[i] = NumberWord{Word: strings.ToLower(w.Word), Value: w.Value}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// LoadVocabulary reads a vocabulary YAML file from disk.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Vocabulary{}, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}
	return v, nil
}

// SaveVocabulary writes a vocabulary to a YAML file.
func SaveVocabulary(path string, v Vocabulary) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing vocabulary: %w", err)
	}
	return nil
}
