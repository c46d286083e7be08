package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

var addressPattern = regexp.MustCompile(`^bc1q[a-z0-9]{38}$`)

func TestWalletAddressFormat(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")

	wallet, err := eng.Bitcoin.Wallet(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Regexp(t, addressPattern, wallet.Address)
}

func TestCreateWalletRejectsSecond(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	first, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)

	_, err = eng.Bitcoin.CreateWallet(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrWalletExists)

	// Still exactly the one original wallet.
	again, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.Address, again.Address)
}

func TestBuyConvertsAtOneQuote(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	mustDeposit(t, eng, user.ID, 100)
	ctx := context.Background()

	result, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.NewFromInt(90))
	require.NoError(t, err)
	assert.True(t, result.Price.Equal(decimal.NewFromInt(32000)))
	// 90 / 32000 = 0.0028125 BTC, exact at the frozen quote.
	assert.True(t, result.BTCAmount.Equal(decimal.RequireFromString("0.0028125")))

	assert.True(t, balanceOf(t, eng, user.ID).Equal(decimal.NewFromInt(10)))
	wallet, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(result.BTCAmount))
}

func TestBuyThenSellRoundTrips(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	mustDeposit(t, eng, user.ID, 100)
	ctx := context.Background()

	bought, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.NewFromInt(90))
	require.NoError(t, err)

	sold, err := eng.Bitcoin.Sell(ctx, user.ID, bought.BTCAmount)
	require.NoError(t, err)
	assert.True(t, sold.CashAmount.Equal(decimal.NewFromInt(90)))

	// Same quote both ways, so the round trip is lossless.
	assert.True(t, balanceOf(t, eng, user.ID).Equal(decimal.NewFromInt(100)))
	wallet, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}

func TestBuyRejectsInsufficientCash(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	mustDeposit(t, eng, user.ID, 10)
	ctx := context.Background()

	_, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.NewFromInt(20))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, balanceOf(t, eng, user.ID).Equal(decimal.NewFromInt(10)))

	wallet, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
	assert.Empty(t, wallet.Trades)
}

func TestSellRejectsInsufficientBitcoin(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	_, err := eng.Bitcoin.Sell(ctx, user.ID, decimal.RequireFromString("0.5"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBitcoin)
}

func TestTradeRejectsNonPositiveAmount(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	_, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
	_, err = eng.Bitcoin.Sell(ctx, user.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
}

func TestTradesLogAppendsInExecutionOrder(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	mustDeposit(t, eng, user.ID, 100)
	ctx := context.Background()

	bought, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.NewFromInt(64))
	require.NoError(t, err)
	_, err = eng.Bitcoin.Sell(ctx, user.ID, bought.BTCAmount)
	require.NoError(t, err)

	trades, err := eng.Bitcoin.Trades(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, domain.TradeBuy, trades[0].Kind)
	assert.Equal(t, domain.TradeSell, trades[1].Kind)
	assert.True(t, trades[0].CashValue.Equal(decimal.NewFromInt(64)))
}

// userSaveFailingStore fails SaveUsers on demand so a test can interrupt
// an operation between its wallet save and its cash save.
type userSaveFailingStore struct {
	store.Store
	fail bool
}

func (s *userSaveFailingStore) SaveUsers(ctx context.Context, users []domain.User) error {
	if s.fail {
		return errors.New("users unavailable")
	}
	return s.Store.SaveUsers(ctx, users)
}

func TestSellPersistsWalletDebitBeforeCashCredit(t *testing.T) {
	st := &userSaveFailingStore{Store: store.NewMemory()}
	eng := New(st, fixedPrice(32000))
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	mustDeposit(t, eng, user.ID, 100)
	ctx := context.Background()

	bought, err := eng.Bitcoin.Buy(ctx, user.ID, decimal.NewFromInt(64))
	require.NoError(t, err)

	st.fail = true
	_, err = eng.Bitcoin.Sell(ctx, user.ID, bought.BTCAmount)
	require.Error(t, err)
	st.fail = false

	// The interrupted sell debited the wallet but never credited cash:
	// value can be lost mid-operation, never minted.
	wallet, err := eng.Bitcoin.Wallet(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
	assert.True(t, balanceOf(t, eng, user.ID).Equal(decimal.NewFromInt(36)))
}

func TestSimulatedPriceStaysInBand(t *testing.T) {
	low := decimal.NewFromInt(29000)
	high := decimal.NewFromInt(31000)
	for i := 0; i < 100; i++ {
		price := SimulatedPrice()
		assert.True(t, price.GreaterThanOrEqual(low), "price %s below band", price)
		assert.True(t, price.LessThanOrEqual(high), "price %s above band", price)
		assert.LessOrEqual(t, int(price.Exponent()*-1), 2)
	}
}
