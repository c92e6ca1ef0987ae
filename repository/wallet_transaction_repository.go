package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// WalletTransactionRepository implements the append-only wallet ledger
type WalletTransactionRepository struct {
	q Queryable
}

// NewWalletTransactionRepository creates a new wallet transaction repository
func NewWalletTransactionRepository(db *database.DB) *WalletTransactionRepository {
	return &WalletTransactionRepository{q: db.Pool}
}

func newWalletTransactionRepository(tx Queryable) interfaces.WalletTransactionRepository {
	return &WalletTransactionRepository{q: tx}
}

// Record appends a new ledger entry. Entries are never updated or deleted.
func (r *WalletTransactionRepository) Record(ctx context.Context, txn *entities.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (user_id, type, amount_cents, game_id, draw_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		txn.UserID,
		txn.Type,
		txn.AmountCents,
		txn.GameID,
		txn.DrawID,
		txn.Description,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record wallet transaction for user %d: %w", txn.UserID, err)
	}
	return nil
}

// GetByUser returns a user's ledger entries, newest first
func (r *WalletTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.WalletTransaction, error) {
	query := `
		SELECT id, user_id, type, amount_cents, game_id, draw_id, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var txns []*entities.WalletTransaction
	for rows.Next() {
		var txn entities.WalletTransaction
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Type,
			&txn.AmountCents,
			&txn.GameID,
			&txn.DrawID,
			&txn.Description,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		txns = append(txns, &txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet transactions: %w", err)
	}

	return txns, nil
}

// SumByUserAndType returns the signed sum of a user's entries of a type
func (r *WalletTransactionRepository) SumByUserAndType(ctx context.Context, userID int64, txType entities.TransactionType) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM wallet_transactions
		WHERE user_id = $1 AND type = $2
	`

	var sum int64
	if err := r.q.QueryRow(ctx, query, userID, txType).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum wallet transactions for user %d: %w", userID, err)
	}
	return sum, nil
}
