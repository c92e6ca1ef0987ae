package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepository(tx Queryable) interfaces.UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, email, username, credit_cents, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.CreditCents,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// Create creates a new user with a zero balance
func (r *UserRepository) Create(ctx context.Context, email, username string) (*entities.User, error) {
	query := `
		INSERT INTO users (email, username, credit_cents)
		VALUES ($1, $2, 0)
		RETURNING id, email, username, credit_cents, created_at, updated_at
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, email, username))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return user, nil
}

// AdjustCredit atomically increments a user's balance and returns the new
// balance. The guard clause rejects any decrement that would go negative,
// so concurrent debits cannot overdraw a wallet.
func (r *UserRepository) AdjustCredit(ctx context.Context, userID, deltaCents int64) (int64, error) {
	query := `
		UPDATE users
		SET credit_cents = credit_cents + $2, updated_at = NOW()
		WHERE id = $1 AND credit_cents + $2 >= 0
		RETURNING credit_cents
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, userID, deltaCents).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("insufficient balance or unknown user %d", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust credit for user %d: %w", userID, err)
	}
	return newBalance, nil
}
