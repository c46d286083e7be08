package domain

import (
	"errors"
	"fmt"
)

// Business outcomes of engine operations. All are recoverable and
// caller-visible; none is fatal to the process.
var (
	// ErrUserNotFound indicates that no user matches the given identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrWalletNotFound indicates that the user has no bitcoin wallet.
	ErrWalletNotFound = errors.New("bitcoin wallet not found")
	// ErrWalletExists indicates that the user already has a bitcoin wallet.
	ErrWalletExists = errors.New("user already has a bitcoin wallet")
	// ErrCardNotFound indicates that no card matches the given id and owner.
	ErrCardNotFound = errors.New("card not found")
	// ErrInsufficientFunds indicates that the cash balance cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientBitcoin indicates that the BTC balance cannot cover the amount.
	ErrInsufficientBitcoin = errors.New("insufficient bitcoin balance")
	// ErrNonPositiveAmount indicates an amount that is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrUnknownKind indicates a transaction kind outside the taxonomy.
	ErrUnknownKind = errors.New("unknown transaction kind")
	// ErrMismatchedParties indicates a deposit or withdrawal whose sender
	// and receiver differ; those kinds are self-referential.
	ErrMismatchedParties = errors.New("deposit and withdrawal are self-referential")
)

// DuplicateFieldError is returned by signup when a unique identity field
// collides with an existing user. Field names the first colliding field
// in username, email, cashtag priority order.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s %q already taken", e.Field, e.Value)
}
