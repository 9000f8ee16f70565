// Package nlp turns a single line of free Portuguese text into a
// transaction candidate. Matching is by keyword substring, not grammar.
package nlp

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/caixa-dev/caixa/internal/model"
)

// DefaultAmbiguousType is the type assigned when the text matches both
// keyword sets or neither.
const DefaultAmbiguousType = model.Income

const (
	baseConfidence     = 0.5
	typeConfidence     = 0.3
	categoryConfidence = 0.2
)

var (
	currencyPattern = regexp.MustCompile(`r\$\s*`)
	realPattern     = regexp.MustCompile(`reais?`)
	numberPattern   = regexp.MustCompile(`\d+([.,]\d{1,2})?`)
)

// Parser extracts amount, type and category from free text. A Parser is
// immutable after New and safe for concurrent use.
type Parser struct {
	vocab         Vocabulary
	ambiguousType model.TxnType
}

// Option configures a Parser.
type Option func(*Parser)

// WithAmbiguousType overrides the type used when keyword evidence is
// missing or contradictory.
func WithAmbiguousType(t model.TxnType) Option {
	return func(p *Parser) {
		if t.Valid() {
			p.ambiguousType = t
		}
	}
}

// New creates a Parser over a private copy of vocab.
func New(vocab Vocabulary, opts ...Option) *Parser {
	p := &Parser{
		vocab:         vocab.normalized(),
		ambiguousType: DefaultAmbiguousType,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New(DefaultVocabulary())

// Parse runs the default parser over input.
func Parse(input string) *model.ParsedTransaction {
	return defaultParser.Parse(input)
}

// Parse converts input into a ParsedTransaction. It returns nil when input
// is blank or carries no recognizable amount.
func (p *Parser) Parse(input string) *model.ParsedTransaction {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	lower := strings.ToLower(input)
	amount, ok := p.extractAmount(lower)
	if !ok {
		return nil
	}

	txnType, decided := p.detectType(lower)
	category := p.suggestCategory(lower, txnType)

	confidence := baseConfidence
	if decided {
		confidence += typeConfidence
	}
	if !p.isFallback(category) {
		confidence += categoryConfidence
	}

	return &model.ParsedTransaction{
		Type:        txnType,
		Amount:      amount,
		Category:    category,
		Description: trimmed,
		Confidence:  math.Min(confidence, 1.0),
	}
}

// extractAmount finds the first numeric literal, falling back to the
// number-word table. lower must already be lower-cased. Zero is treated as
// no amount.
func (p *Parser) extractAmount(lower string) (decimal.Decimal, bool) {
	normalized := currencyPattern.ReplaceAllString(lower, "")
	normalized = realPattern.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(normalized)

	if m := numberPattern.FindString(normalized); m != "" {
		amount, err := decimal.NewFromString(strings.Replace(m, ",", ".", 1))
		if err != nil || !amount.IsPositive() {
			return decimal.Zero, false
		}
		return amount, true
	}

	// Table order, not position in the text, picks the word.
	for _, w := range p.vocab.NumberWords {
		if strings.Contains(normalized, w.Word) {
			return decimal.NewFromInt(w.Value), true
		}
	}
	return decimal.Zero, false
}

// detectType reports the resolved type and whether keywords decided it.
func (p *Parser) detectType(lower string) (model.TxnType, bool) {
	hasIncome := containsAny(lower, p.vocab.IncomeKeywords)
	hasExpense := containsAny(lower, p.vocab.ExpenseKeywords)

	switch {
	case hasIncome && !hasExpense:
		return model.Income, true
	case hasExpense && !hasIncome:
		return model.Expense, true
	default:
		return p.ambiguousType, false
	}
}

func (p *Parser) suggestCategory(lower string, t model.TxnType) string {
	for _, r := range p.vocab.Categories {
		if strings.Contains(lower, r.Keyword) {
			return r.Category
		}
	}
	if t == model.Expense {
		return p.vocab.DefaultExpenseCategory
	}
	return p.vocab.DefaultIncomeCategory
}

// isFallback reports whether category is one of the generic labels, even
// when a keyword rule mapped to it.
func (p *Parser) isFallback(category string) bool {
	return category == p.vocab.DefaultIncomeCategory || category == p.vocab.DefaultExpenseCategory
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Validate reports whether a parse result may be persisted.
func Validate(p *model.ParsedTransaction) bool {
	if p == nil {
		return false
	}
	if !p.Amount.IsPositive() {
		return false
	}
	return p.Type != "" && p.Category != ""
}
