package categories

import (
	"github.com/caixa-dev/caixa/internal/model"
	"github.com/caixa-dev/caixa/internal/nlp"
)

type categorySet struct {
	income, expense []string
}

var businessCategories = map[model.BusinessType]categorySet{
	model.BusinessBarbershop: {
		income:  []string{"Corte de Cabelo", "Barba", "Coloração", "Produtos"},
		expense: []string{"Aluguel", "Energia Elétrica", "Água", "Produtos", "Limpeza"},
	},
	model.BusinessSalon: {
		income:  []string{"Corte", "Coloração", "Manicure", "Pedicure", "Escova", "Hidratação", "Produtos"},
		expense: []string{"Aluguel", "Energia Elétrica", "Água", "Produtos", "Limpeza"},
	},
	model.BusinessWorkshop: {
		income:  []string{"Serviços", "Peças", "Mão de Obra"},
		expense: []string{"Aluguel", "Energia Elétrica", "Ferramentas", "Peças", "Limpeza"},
	},
	model.BusinessRetail: {
		income:  []string{"Vendas", "Serviços"},
		expense: []string{"Aluguel", "Energia Elétrica", "Água", "Estoque", "Limpeza"},
	},
	model.BusinessOther: {
		income:  []string{"Serviços", "Produtos"},
		expense: []string{"Aluguel", "Energia Elétrica", "Água", "Despesas Gerais"},
	},
}

// DefaultCategories returns the starting category list for a business type.
// The parser's fallback categories are always included so every parsed
// transaction lands in a known category. Unknown types use the "other" set.
func DefaultCategories(vocab nlp.Vocabulary, businessType model.BusinessType) []model.Category {
	set, ok := businessCategories[businessType]
	if !ok {
		set = businessCategories[model.BusinessOther]
	}

	var out []model.Category
	seen := make(map[key]bool)
	add := func(name string, typ model.TxnType) {
		k := key{name, typ}
		if name == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, model.Category{Name: name, Type: typ, IsDefault: true})
	}

	for _, name := range set.income {
		add(name, model.Income)
	}
	add(vocab.DefaultIncomeCategory, model.Income)
	for _, name := range set.expense {
		add(name, model.Expense)
	}
	add(vocab.DefaultExpenseCategory, model.Expense)
	return out
}
