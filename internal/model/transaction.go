package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the direction of a cash movement.
type TxnType string

const (
	Income  TxnType = "income"
	Expense TxnType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TxnType) Valid() bool {
	return t == Income || t == Expense
}

// Method records how a transaction was entered.
type Method string

const (
	MethodManual Method = "manual"
	MethodVoice  Method = "voice"
)

// Valid reports whether m is a known entry method.
func (m Method) Valid() bool {
	return m == MethodManual || m == MethodVoice
}

// Transaction is a persisted income or expense event for one business.
type Transaction struct {
	ID          string // "YYYY-MM-NNN"
	BusinessID  string
	Type        TxnType
	Amount      decimal.Decimal // always positive; Type carries the sign
	Date        time.Time
	Description string
	Category    string
	Method      Method
	CreatedAt   time.Time
}

// Signed returns the amount as a balance contribution: positive for income,
// negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ParsedTransaction is the parser's best guess at a transaction before it is
// accepted and persisted.
type ParsedTransaction struct {
	Type        TxnType
	Amount      decimal.Decimal
	Category    string
	Description string
	Confidence  float64 // 0..1, advisory only
}
