package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caixa-dev/caixa/internal/model"
)

func validTxn(txnID string) model.Transaction {
	return model.Transaction{
		ID:       txnID,
		Type:     model.Income,
		Amount:   dec("10.00"),
		Date:     date(2025, 3, 1),
		Category: "Serviços",
		Method:   model.MethodManual,
	}
}

func rules(errs []ValidationError) []int {
	out := make([]int, len(errs))
	for i, e := range errs {
		out[i] = e.Rule
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	errs := ValidateTransactions([]model.Transaction{validTxn("2025-03-001"), validTxn("2025-03-002")})
	assert.Empty(t, errs)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Transaction)
		rule   int
	}{
		{"zero amount", func(tx *model.Transaction) { tx.Amount = dec("0") }, 1},
		{"negative amount", func(tx *model.Transaction) { tx.Amount = dec("-5") }, 1},
		{"three decimals", func(tx *model.Transaction) { tx.Amount = dec("1.005") }, 2},
		{"bad type", func(tx *model.Transaction) { tx.Type = "transfer" }, 3},
		{"no category", func(tx *model.Transaction) { tx.Category = "" }, 4},
		{"long description", func(tx *model.Transaction) { tx.Description = strings.Repeat("ç", 501) }, 5},
		{"bad id", func(tx *model.Transaction) { tx.ID = "abc" }, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTxn("2025-03-001")
			tt.mutate(&tx)
			errs := ValidateTransactions([]model.Transaction{tx})
			assert.Equal(t, []int{tt.rule}, rules(errs))
		})
	}
}

func TestValidate_TrailingZerosAreFine(t *testing.T) {
	tx := validTxn("2025-03-001")
	tx.Amount = dec("1.500")
	assert.Empty(t, ValidateTransactions([]model.Transaction{tx}))
}

func TestValidate_DescriptionAtLimit(t *testing.T) {
	tx := validTxn("2025-03-001")
	tx.Description = strings.Repeat("ã", MaxDescriptionLen)
	assert.Empty(t, ValidateTransactions([]model.Transaction{tx}))
}

func TestValidate_DuplicateID(t *testing.T) {
	errs := ValidateTransactions([]model.Transaction{validTxn("2025-03-001"), validTxn("2025-03-001")})
	assert.Equal(t, []int{6}, rules(errs))
	assert.Contains(t, errs[0].Error(), "rule 6 [2025-03-001]: duplicate")
}
