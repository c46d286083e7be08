package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

func addCard(t *testing.T, eng *Engine, userID, number string) *domain.Card {
	t.Helper()
	card, err := eng.Cards.AddCard(context.Background(), userID, number, "A HOLDER", "12/30", "123", domain.CardDebit)
	require.NoError(t, err)
	return card
}

func TestFirstCardBecomesDefault(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")

	first := addCard(t, eng, user.ID, "4111111111111111")
	second := addCard(t, eng, user.ID, "5500005555555559")

	assert.True(t, first.IsDefault)
	assert.False(t, second.IsDefault)
}

func TestDefaultIsPerUser(t *testing.T) {
	eng := newTestEngine(t)
	alice := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	bob := mustCreateUser(t, eng, "bob", "bob@example.com", "bob")

	addCard(t, eng, alice.ID, "4111111111111111")
	bobCard := addCard(t, eng, bob.ID, "5500005555555559")

	// Bob's first card is his default even though Alice added one earlier.
	assert.True(t, bobCard.IsDefault)
}

func TestRemovingDefaultPromotesOldestRemaining(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	first := addCard(t, eng, user.ID, "4111111111111111")
	second := addCard(t, eng, user.ID, "5500005555555559")
	third := addCard(t, eng, user.ID, "340000999990009")

	require.NoError(t, eng.Cards.RemoveCard(ctx, first.ID, user.ID))

	cards, err := eng.Cards.ListCards(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, second.ID, cards[0].ID)
	assert.True(t, cards[0].IsDefault)
	assert.Equal(t, third.ID, cards[1].ID)
	assert.False(t, cards[1].IsDefault)
}

func TestRemovingNonDefaultKeepsDefault(t *testing.T) {
	eng := newTestEngine(t)
	user := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	ctx := context.Background()

	first := addCard(t, eng, user.ID, "4111111111111111")
	second := addCard(t, eng, user.ID, "5500005555555559")

	require.NoError(t, eng.Cards.RemoveCard(ctx, second.ID, user.ID))

	cards, err := eng.Cards.ListCards(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, first.ID, cards[0].ID)
	assert.True(t, cards[0].IsDefault)
}

func TestRemoveCardChecksOwnership(t *testing.T) {
	eng := newTestEngine(t)
	alice := mustCreateUser(t, eng, "alice", "alice@example.com", "alice")
	bob := mustCreateUser(t, eng, "bob", "bob@example.com", "bob")
	ctx := context.Background()

	card := addCard(t, eng, alice.ID, "4111111111111111")

	err := eng.Cards.RemoveCard(ctx, card.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	err = eng.Cards.RemoveCard(ctx, "no-such-card", alice.ID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestMaskedNumberShowsLastFour(t *testing.T) {
	card := domain.Card{Number: "4111111111111111"}
	assert.Equal(t, "************1111", card.MaskedNumber())
}
