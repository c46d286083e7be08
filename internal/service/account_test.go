package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

func TestCreateUserStartsAtZeroWithWallet(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.Balance.IsZero())
	assert.NotEqual(t, "secret", user.PasswordHash)

	wallet, err := eng.Bitcoin.Wallet(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
	assert.Empty(t, wallet.Trades)
}

func TestCreateUserDuplicateFields(t *testing.T) {
	eng := newTestEngine(t)
	mustCreateUser(t, eng, "alice", "alice@example.com", "alice")

	cases := []struct {
		name     string
		username string
		email    string
		cashtag  string
		field    string
	}{
		{"username taken", "alice", "new@example.com", "newtag", "username"},
		{"email taken", "newname", "alice@example.com", "newtag", "email"},
		{"cashtag taken", "newname", "new@example.com", "alice", "cashtag"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Accounts.CreateUser(context.Background(), tc.username, tc.email, tc.cashtag, "hunter2hunter2")
			var dup *domain.DuplicateFieldError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tc.field, dup.Field)
		})
	}
}

func TestCreateUserUsernameCollisionReportedBeforeCashtag(t *testing.T) {
	eng := newTestEngine(t)
	mustCreateUser(t, eng, "alice", "alice@example.com", "alice")

	// Both username and cashtag collide; field checks run in
	// username, email, cashtag order.
	_, err := eng.Accounts.CreateUser(context.Background(), "alice", "other@example.com", "alice", "hunter2hunter2")
	var dup *domain.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
}

func TestFindByLookups(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	byEmail, err := eng.Accounts.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byTag, err := eng.Accounts.FindByCashtag(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byTag.ID)

	_, err = eng.Accounts.FindByCashtag(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerifyCredential(t *testing.T) {
	eng := newTestEngine(t)
	user, err := eng.Accounts.CreateUser(context.Background(), "alice", "alice@example.com", "alice", "correct horse")
	require.NoError(t, err)

	assert.True(t, eng.Accounts.VerifyCredential(user, "correct horse"))
	assert.False(t, eng.Accounts.VerifyCredential(user, "wrong horse"))
}

func TestAdjustBalanceRejectsOverdraft(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	require.NoError(t, eng.Accounts.AdjustBalance(ctx, user.ID, decimal.NewFromInt(50)))

	err := eng.Accounts.AdjustBalance(ctx, user.ID, decimal.NewFromInt(-70))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))
	assert.True(t, balanceOf(t, eng, user.ID).Equal(decimal.NewFromInt(50)))
}
