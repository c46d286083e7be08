package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// fixedPrice freezes the exchange quote so cash/BTC conversions divide
// exactly and assertions can compare decimals for equality.
func fixedPrice(price int64) PriceSource {
	return func() decimal.Decimal { return decimal.NewFromInt(price) }
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(store.NewMemory(), fixedPrice(32000))
}

func mustCreateUser(t *testing.T, eng *Engine, username, email, cashtag string) *domain.User {
	t.Helper()
	user, err := eng.Accounts.CreateUser(context.Background(), username, email, cashtag, "hunter2hunter2")
	require.NoError(t, err)
	return user
}

func mustDeposit(t *testing.T, eng *Engine, userID string, amount int64) {
	t.Helper()
	_, err := eng.Ledger.Transfer(context.Background(), userID, userID,
		decimal.NewFromInt(amount), "Deposit", domain.KindDeposit)
	require.NoError(t, err)
}

func balanceOf(t *testing.T, eng *Engine, userID string) decimal.Decimal {
	t.Helper()
	user, err := eng.Accounts.FindByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Balance
}
