package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// CardService is the peripheral card registry. Card mutations never touch
// balances, so it serializes on its own lock rather than the ledger one.
type CardService struct {
	store store.Store
	mu    sync.Mutex
}

// AddCard registers a card for the user. The user's first card becomes
// the default.
func (s *CardService) AddCard(ctx context.Context, userID, number, holder, expiry, cvv string, kind domain.CardType) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.store.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	isDefault := true
	for _, c := range cards {
		if c.UserID == userID {
			isDefault = false
			break
		}
	}
	card := domain.Card{
		ID:         uuid.NewString(),
		UserID:     userID,
		Number:     number,
		HolderName: holder,
		Expiry:     expiry,
		CVV:        cvv,
		Type:       kind,
		IsDefault:  isDefault,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveCards(ctx, append(cards, card)); err != nil {
		return nil, err
	}
	return &card, nil
}

// ListCards returns the user's cards in the order they were added. The
// full card number is returned; masking happens at the display boundary.
func (s *CardService) ListCards(ctx context.Context, userID string) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.store.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Card
	for _, c := range cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// RemoveCard deletes the user's card. If the removed card was the
// default, one of the remaining cards is promoted so the single-default
// rule keeps holding.
func (s *CardService) RemoveCard(ctx context.Context, cardID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.store.LoadCards(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range cards {
		if c.ID == cardID && c.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("card %s for user %s: %w", cardID, userID, domain.ErrCardNotFound)
	}
	wasDefault := cards[idx].IsDefault
	cards = append(cards[:idx], cards[idx+1:]...)
	if wasDefault {
		for i := range cards {
			if cards[i].UserID == userID {
				cards[i].IsDefault = true
				break
			}
		}
	}
	return s.store.SaveCards(ctx, cards)
}
