package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSigned(t *testing.T) {
	amt := decimal.RequireFromString("42.50")

	in := Transaction{Type: Income, Amount: amt}
	out := Transaction{Type: Expense, Amount: amt}

	assert.Equal(t, "42.50", in.Signed().StringFixed(2))
	assert.Equal(t, "-42.50", out.Signed().StringFixed(2))
}

func TestTxnTypeValid(t *testing.T) {
	assert.True(t, Income.Valid())
	assert.True(t, Expense.Valid())
	assert.False(t, TxnType("").Valid())
	assert.False(t, TxnType("transfer").Valid())
}

func TestMethodValid(t *testing.T) {
	assert.True(t, MethodManual.Valid())
	assert.True(t, MethodVoice.Valid())
	assert.False(t, Method("sms").Valid())
}

func TestBusinessTypeValid(t *testing.T) {
	for _, b := range []BusinessType{BusinessBarbershop, BusinessSalon, BusinessWorkshop, BusinessRetail, BusinessOther} {
		assert.True(t, b.Valid(), "%s should be valid", b)
	}
	assert.False(t, BusinessType("bank").Valid())
}
