package entities

import (
	"errors"
	"time"
)

// TransactionType classifies a wallet ledger entry
type TransactionType string

const (
	// TransactionTypeDebit is a charge against the wallet (ticket purchase)
	TransactionTypeDebit TransactionType = "DEBIT"
	// TransactionTypeCredit is a top-up or grant into the wallet
	TransactionTypeCredit TransactionType = "CREDIT"
	// TransactionTypePayout is a prize payment from a settled draw
	TransactionTypePayout TransactionType = "PAYOUT"
)

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

// WalletTransaction is an append-only ledger entry. AmountCents is the
// signed balance change: negative for DEBIT, positive for CREDIT and PAYOUT.
// Rows are never updated or deleted; the ledger is the audit trail of all
// balance changes.
type WalletTransaction struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Type        TransactionType `db:"type"`
	AmountCents int64           `db:"amount_cents"`
	GameID      *int64          `db:"game_id"`
	DrawID      *int64          `db:"draw_id"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

// Validate checks the sign convention for the transaction type
func (t *WalletTransaction) Validate() error {
	if t.AmountCents == 0 {
		return errors.New("ledger amount cannot be zero")
	}
	switch t.Type {
	case TransactionTypeDebit:
		if t.AmountCents > 0 {
			return errors.New("debit amount must be negative")
		}
	case TransactionTypeCredit, TransactionTypePayout:
		if t.AmountCents < 0 {
			return errors.New("credit amount must be positive")
		}
	default:
		return errors.New("unknown transaction type")
	}
	return nil
}

// IsPayout returns true for prize payment entries
func (t *WalletTransaction) IsPayout() bool {
	return t.Type == TransactionTypePayout
}
