package ledger

import (
	"fmt"
	"unicode/utf8"

	"github.com/caixa-dev/caixa/internal/id"
	"github.com/caixa-dev/caixa/internal/model"
)

// MaxDescriptionLen is the longest description accepted, in runes.
const MaxDescriptionLen = 500

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        int
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.TxnID, e.Description)
}

// ValidateTransactions checks one month's transactions:
//
//  1. amount is positive
//  2. amount has at most two decimal places
//  3. type is income or expense
//  4. category is set
//  5. description fits MaxDescriptionLen
//  6. IDs are well formed and unique
func ValidateTransactions(txns []model.Transaction) []ValidationError {
	var errs []ValidationError
	add := func(rule int, txnID, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, TxnID: txnID, Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(txns))
	for _, txn := range txns {
		if !txn.Amount.IsPositive() {
			add(1, txn.ID, "amount %s must be positive", txn.Amount)
		}
		if !txn.Amount.Equal(txn.Amount.Truncate(2)) {
			add(2, txn.ID, "amount %s has more than 2 decimal places", txn.Amount)
		}
		if !txn.Type.Valid() {
			add(3, txn.ID, "unknown type %q", txn.Type)
		}
		if txn.Category == "" {
			add(4, txn.ID, "category is required")
		}
		if n := utf8.RuneCountInString(txn.Description); n > MaxDescriptionLen {
			add(5, txn.ID, "description has %d characters, limit is %d", n, MaxDescriptionLen)
		}

		if _, _, _, err := id.ParseTxnID(txn.ID); err != nil {
			add(6, txn.ID, "invalid transaction ID: %v", err)
			continue
		}
		if seen[txn.ID] {
			add(6, txn.ID, "duplicate transaction ID")
		}
		seen[txn.ID] = true
	}
	return errs
}
