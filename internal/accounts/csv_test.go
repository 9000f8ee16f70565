package accounts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixa-dev/caixa/internal/model"
)

var created = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestRoundTrip(t *testing.T) {
	accts := []model.Account{
		{ID: "a1", Name: "Nubank", Type: model.AccountBank, Balance: decimal.RequireFromString("1250.40"), CreatedAt: created},
		{ID: "a2", Name: "Caixa, gaveta", Type: model.AccountCash, Balance: decimal.RequireFromString("-20"), CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range accts {
		assert.Equal(t, accts[i].ID, got[i].ID)
		assert.Equal(t, accts[i].Name, got[i].Name)
		assert.Equal(t, accts[i].Type, got[i].Type)
		assert.True(t, accts[i].Balance.Equal(got[i].Balance), "balance of %s", accts[i].Name)
		assert.True(t, accts[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestWriteAccounts_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []model.Account{
		{ID: "a1", Name: "Carteira", Type: model.AccountWallet, Balance: decimal.NewFromInt(50), CreatedAt: created},
	}))
	assert.Equal(t, Header+"\na1,Carteira,wallet,50.00,2025-03-10T09:30:00Z\n", buf.String())
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"short", []string{"a1", "Nubank"}, "expected 5 fields"},
		{"type", []string{"a1", "Nubank", "savings", "0.00", "2025-03-10T09:30:00Z"}, "unknown account type"},
		{"balance", []string{"a1", "Nubank", "bank", "muito", "2025-03-10T09:30:00Z"}, "parsing balance"},
		{"created", []string{"a1", "Nubank", "bank", "0.00", "ontem"}, "parsing created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAccount(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
