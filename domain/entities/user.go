package entities

import (
	"errors"
	"time"
)

// User holds a player's wallet balance. CreditCents is mutated only through
// atomic increments paired 1:1 with a wallet ledger row in the same
// transaction.
type User struct {
	ID          int64     `db:"id"`
	Email       string    `db:"email"`
	Username    string    `db:"username"`
	CreditCents int64     `db:"credit_cents"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CanAfford checks if the user has sufficient balance for an amount
func (u *User) CanAfford(amountCents int64) bool {
	return u.CreditCents >= amountCents
}

// ValidateAmount checks if an amount is valid and affordable
func (u *User) ValidateAmount(amountCents int64) error {
	if amountCents <= 0 {
		return errors.New("amount must be positive")
	}
	if !u.CanAfford(amountCents) {
		return errors.New("insufficient balance")
	}
	return nil
}
