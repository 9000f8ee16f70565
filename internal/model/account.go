package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is where money is held.
type AccountType string

const (
	AccountBank   AccountType = "bank"
	AccountCard   AccountType = "card"
	AccountWallet AccountType = "wallet"
	AccountCash   AccountType = "cash"
)

// Valid reports whether a is a known account type.
func (a AccountType) Valid() bool {
	switch a {
	case AccountBank, AccountCard, AccountWallet, AccountCash:
		return true
	}
	return false
}

// Account is a row in accounts/accounts.csv. Balance is entered by the
// owner and is not derived from the ledger.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	CreatedAt time.Time
}
