package nlp

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixa-dev/caixa/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParse_Examples(t *testing.T) {
	tests := []struct {
		input      string
		wantType   model.TxnType
		wantAmount string
		wantCat    string
		wantConf   float64
	}{
		{"Corte cabelo 35", model.Income, "35", "Corte de Cabelo", 1.0},
		{"Barba 25", model.Income, "25", "Barba", 1.0},
		{"Luz 180", model.Expense, "180", "Energia Elétrica", 1.0},
		{"Produto limpeza 42", model.Expense, "42", "Produtos", 1.0},
		{"Recebi 50 de João", model.Income, "50", "Serviços", 0.8},
		{"Paguei aluguel 1200", model.Expense, "1200", "Aluguel", 1.0},
		{"Venda de produto 80", model.Income, "80", "Produtos", 0.7},
		{"Comprei tesoura 150", model.Expense, "150", "Despesas Gerais", 0.8},
		{"Coloração 120", model.Income, "120", "Coloração", 1.0},
		{"Manicure 40", model.Income, "40", "Manicure", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.True(t, dec(tt.wantAmount).Equal(got.Amount), "amount: got %s", got.Amount)
			assert.Equal(t, tt.wantCat, got.Category)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.input, got.Description)
		})
	}
}

func TestParse_Blank(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("   "))
	assert.Nil(t, Parse("\t\n"))
}

func TestParse_NoAmount(t *testing.T) {
	for _, input := range []string{"corte sem valor", "paguei a luz", "nada aqui"} {
		assert.Nil(t, Parse(input), "input %q", input)
	}
}

func TestParse_ZeroAmountFails(t *testing.T) {
	assert.Nil(t, Parse("R$ 0"))
	assert.Nil(t, Parse("corte 0,00"))
}

func TestParse_CurrencyNotation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"R$ 35,50 corte", "35.50"},
		{"r$35.5 barba", "35.5"},
		{"35 reais de barba", "35"},
		{"um real e 20 centavos", "20"},
		{"Luz R$180", "180"},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		require.NotNil(t, got, "input %q", tt.input)
		assert.True(t, dec(tt.want).Equal(got.Amount), "input %q: got %s", tt.input, got.Amount)
	}
}

func TestParse_NumberWords(t *testing.T) {
	got := Parse("vinte de barba")
	require.NotNil(t, got)
	assert.True(t, dec("20").Equal(got.Amount))
	assert.Equal(t, model.Income, got.Type)
	assert.Equal(t, "Barba", got.Category)

	got = Parse("cinquenta de luz")
	require.NotNil(t, got)
	assert.True(t, dec("50").Equal(got.Amount))
	assert.Equal(t, model.Expense, got.Type)
}

func TestParse_NumberWordsUseTableOrder(t *testing.T) {
	// "cinco" precedes "dez" in the table even though "dez" comes first in the text.
	got := Parse("recebi dez mais cinco")
	require.NotNil(t, got)
	assert.True(t, dec("5").Equal(got.Amount), "got %s", got.Amount)
}

func TestParse_DigitsBeatNumberWords(t *testing.T) {
	got := Parse("dois cortes por 70")
	require.NotNil(t, got)
	assert.True(t, dec("70").Equal(got.Amount))
}

func TestParse_CaseInsensitive(t *testing.T) {
	got := Parse("LUZ 180")
	require.NotNil(t, got)
	assert.Equal(t, model.Expense, got.Type)
	assert.Equal(t, "Energia Elétrica", got.Category)

	got = Parse("ÁGUA 90")
	require.NotNil(t, got)
	assert.Equal(t, "Água", got.Category)
}

func TestParse_TrimsDescription(t *testing.T) {
	got := Parse("   Barba 25  ")
	require.NotNil(t, got)
	assert.Equal(t, "Barba 25", got.Description)
}

func TestParse_AmbiguousDefaultsToIncome(t *testing.T) {
	// Both sets match: "venda" (income) and "produto" (expense).
	got := Parse("venda produto 10")
	require.NotNil(t, got)
	assert.Equal(t, model.Income, got.Type)

	// Neither set matches.
	got = Parse("tesoura 10")
	require.NotNil(t, got)
	assert.Equal(t, model.Income, got.Type)
	assert.Equal(t, "Serviços", got.Category)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
}

func TestParse_AmbiguousTypeOption(t *testing.T) {
	p := New(DefaultVocabulary(), WithAmbiguousType(model.Expense))

	got := p.Parse("tesoura 10")
	require.NotNil(t, got)
	assert.Equal(t, model.Expense, got.Type)
	assert.Equal(t, "Despesas Gerais", got.Category)

	// Keyword evidence still wins over the policy.
	got = p.Parse("corte 30")
	require.NotNil(t, got)
	assert.Equal(t, model.Income, got.Type)
}

func TestParse_InvalidAmbiguousTypeIgnored(t *testing.T) {
	p := New(DefaultVocabulary(), WithAmbiguousType(model.TxnType("transfer")))
	got := p.Parse("tesoura 10")
	require.NotNil(t, got)
	assert.Equal(t, model.Income, got.Type)
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse("Paguei aluguel 1200")
	b := Parse("Paguei aluguel 1200")
	assert.Equal(t, a, b)
}

func TestParse_CustomVocabulary(t *testing.T) {
	v := Vocabulary{
		IncomeKeywords:         []string{"Conserto"},
		ExpenseKeywords:        []string{"peça"},
		Categories:             []CategoryRule{{Keyword: "Conserto", Category: "Reparos"}},
		NumberWords:            []NumberWord{{Word: "mil", Value: 1000}},
		DefaultIncomeCategory:  "Receitas",
		DefaultExpenseCategory: "Custos",
	}
	p := New(v)

	got := p.Parse("conserto de bicicleta mil")
	require.NotNil(t, got)
	assert.Equal(t, model.Income, got.Type)
	assert.Equal(t, "Reparos", got.Category)
	assert.True(t, dec("1000").Equal(got.Amount))

	got = p.Parse("peça 45")
	require.NotNil(t, got)
	assert.Equal(t, model.Expense, got.Type)
	assert.Equal(t, "Custos", got.Category)
}

func TestParse_RuleToFallbackLabelEarnsNoCategoryBonus(t *testing.T) {
	v := DefaultVocabulary()
	v.Categories = append([]CategoryRule{{Keyword: "avulso", Category: "Serviços"}}, v.Categories...)
	p := New(v)

	got := p.Parse("recebi avulso 40")
	require.NotNil(t, got)
	assert.Equal(t, "Serviços", got.Category)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestParse_UpperCaseCurrencyWords(t *testing.T) {
	got := Parse("RECEBI 50 REAIS")
	require.NotNil(t, got)
	assert.True(t, dec("50").Equal(got.Amount))
	assert.Equal(t, model.Income, got.Type)
}

func TestNew_CopiesVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	p := New(v)
	v.Categories[0].Category = "mutated"

	got := p.Parse("corte 10")
	require.NotNil(t, got)
	assert.Equal(t, "Corte de Cabelo", got.Category)
}

func TestValidate(t *testing.T) {
	assert.False(t, Validate(nil))
	assert.False(t, Validate(&model.ParsedTransaction{Type: model.Income, Amount: decimal.Zero, Category: "x"}))
	assert.False(t, Validate(&model.ParsedTransaction{Type: model.Income, Amount: dec("-5"), Category: "x"}))
	assert.False(t, Validate(&model.ParsedTransaction{Type: "", Amount: dec("10"), Category: "x"}))
	assert.False(t, Validate(&model.ParsedTransaction{Type: model.Income, Amount: dec("10"), Category: ""}))
	assert.True(t, Validate(&model.ParsedTransaction{Type: model.Income, Amount: dec("10"), Category: "x"}))
}

func TestValidate_ParseOutput(t *testing.T) {
	assert.True(t, Validate(Parse("Corte cabelo 35")))
	assert.False(t, Validate(Parse("sem valor")))
}
