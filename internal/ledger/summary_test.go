package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caixa-dev/caixa/internal/model"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 20, 15, 0, 0, 0, brt)
	txns := []model.Transaction{
		{Type: model.Income, Amount: dec("100"), Date: time.Date(2025, 3, 1, 9, 0, 0, 0, brt)},
		{Type: model.Expense, Amount: dec("30"), Date: time.Date(2025, 3, 19, 9, 0, 0, 0, brt)},
		{Type: model.Income, Amount: dec("50"), Date: time.Date(2025, 3, 20, 8, 0, 0, 0, brt)},
		{Type: model.Expense, Amount: dec("12.50"), Date: time.Date(2025, 3, 20, 14, 0, 0, 0, brt)},
		// 01:00 UTC on the 21st is still the 20th in BRT.
		{Type: model.Income, Amount: dec("5"), Date: time.Date(2025, 3, 21, 1, 0, 0, 0, time.UTC)},
	}

	sum := Summarize(txns, now, brt)
	assert.Equal(t, 5, sum.Count)
	assert.Equal(t, "112.5", sum.Balance.String())
	assert.Equal(t, "55", sum.TodayIncome.String())
	assert.Equal(t, "12.5", sum.TodayExpense.String())
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, time.Now(), nil)
	assert.Zero(t, sum.Count)
	assert.True(t, sum.Balance.IsZero())
	assert.True(t, sum.TodayIncome.IsZero())
}
