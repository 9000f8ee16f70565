package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixa-dev/caixa/internal/model"
)

// Summary holds the dashboard totals.
type Summary struct {
	Balance      decimal.Decimal
	TodayIncome  decimal.Decimal
	TodayExpense decimal.Decimal
	Count        int
}

// Summarize totals txns. Balance covers every transaction; the Today
// fields cover the calendar day containing now in loc.
func Summarize(txns []model.Transaction, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}
	n := now.In(loc)
	start := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	sum := Summary{Count: len(txns)}
	for _, t := range txns {
		sum.Balance = sum.Balance.Add(t.Signed())
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		switch t.Type {
		case model.Income:
			sum.TodayIncome = sum.TodayIncome.Add(t.Amount)
		case model.Expense:
			sum.TodayExpense = sum.TodayExpense.Add(t.Amount)
		}
	}
	return sum
}
