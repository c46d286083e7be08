package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// AccountService creates and looks up users, verifies credentials, and is
// the single sanctioned mutator of the cash balance.
type AccountService struct {
	store   store.Store
	wallets *BitcoinService
	mu      *sync.Mutex
}

// CreateUser registers a new user with a zero balance and provisions the
// bitcoin wallet as a side effect. Identity collisions are reported as
// *domain.DuplicateFieldError, checked in username, email, cashtag order.
func (s *AccountService) CreateUser(ctx context.Context, username, email, cashtag, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		switch {
		case u.Username == username:
			return nil, &domain.DuplicateFieldError{Field: "username", Value: username}
		case u.Email == email:
			return nil, &domain.DuplicateFieldError{Field: "email", Value: email}
		case u.Cashtag == cashtag:
			return nil, &domain.DuplicateFieldError{Field: "cashtag", Value: cashtag}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Cashtag:      cashtag,
		PasswordHash: string(hash),
		Balance:      decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	if _, err := s.wallets.createWallet(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("provision bitcoin wallet: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"cashtag": user.Cashtag,
	}).Info("user created")
	return &user, nil
}

// FindByID resolves a user by id.
func (s *AccountService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByID(ctx, id)
}

// FindByEmail resolves a user by email.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findBy(ctx, func(u domain.User) bool { return u.Email == email }, email)
}

// FindByCashtag resolves a user by cashtag.
func (s *AccountService) FindByCashtag(ctx context.Context, cashtag string) (*domain.User, error) {
	return s.findBy(ctx, func(u domain.User) bool { return u.Cashtag == cashtag }, cashtag)
}

func (s *AccountService) findBy(ctx context.Context, match func(domain.User) bool, key string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", key, domain.ErrUserNotFound)
}

// findByID is the lookup used by the other services while they already
// hold the ledger lock.
func (s *AccountService) findByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, domain.ErrUserNotFound)
}

// VerifyCredential recomputes the one-way hash of password and compares
// it to the stored hash. It never recovers the plaintext.
func (s *AccountService) VerifyCredential(user *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// balanceDelta is one signed adjustment to a user's cash balance.
type balanceDelta struct {
	userID string
	delta  decimal.Decimal
}

// AdjustBalance adds delta (positive or negative) to the user's balance.
// External callers go through here; the ledger and exchange apply their
// deltas via applyDeltas under the lock they already hold.
func (s *AccountService) AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyDeltas(ctx, balanceDelta{userID: userID, delta: delta})
}

// applyDeltas applies every delta to the loaded user set in order and
// writes the set back once, so a multi-leg movement (debit then credit)
// commits as a single unit. A delta that would drive a balance negative
// fails the whole batch before anything is persisted.
func (s *AccountService) applyDeltas(ctx context.Context, deltas ...balanceDelta) error {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		idx := -1
		for i := range users {
			if users[i].ID == d.userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%q: %w", d.userID, domain.ErrUserNotFound)
		}
		next := users[idx].Balance.Add(d.delta)
		if next.IsNegative() {
			return fmt.Errorf("user %s: %w", d.userID, domain.ErrInsufficientFunds)
		}
		users[idx].Balance = next
	}
	return s.store.SaveUsers(ctx, users)
}
