package interfaces

import (
	"context"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
)

// GameRepository defines the interface for game configuration access
type GameRepository interface {
	// GetByID retrieves a game by its ID
	GetByID(ctx context.Context, id int64) (*entities.Game, error)

	// GetBySlug retrieves a game by its unique slug
	GetBySlug(ctx context.Context, slug string) (*entities.Game, error)

	// ListActive returns all active games
	ListActive(ctx context.Context) ([]*entities.Game, error)

	// UpdateCurrentJackpot writes the game's rolling jackpot value
	UpdateCurrentJackpot(ctx context.Context, gameID, jackpotCents int64) error
}

// DrawRepository defines the interface for draw data access
type DrawRepository interface {
	// Create inserts a new UPCOMING draw
	Create(ctx context.Context, draw *entities.Draw) error

	// GetByID retrieves a draw by its ID
	GetByID(ctx context.Context, id int64) (*entities.Draw, error)

	// GetByIDForUpdate retrieves a draw by ID with a row lock for update
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error)

	// GetDueDraws returns UPCOMING draws scheduled at or before the given
	// time, oldest first
	GetDueDraws(ctx context.Context, gameID int64, dueBy time.Time) ([]*entities.Draw, error)

	// GetUpcomingByGame returns all UPCOMING draws for a game ordered by
	// scheduled time
	GetUpcomingByGame(ctx context.Context, gameID int64) ([]*entities.Draw, error)

	// GetNextUpcoming returns the earliest-scheduled UPCOMING draw for a game
	GetNextUpcoming(ctx context.Context, gameID int64) (*entities.Draw, error)

	// GetLatestDrawNumber returns the highest draw number for a game across
	// all statuses, or 0 when the game has no draws
	GetLatestDrawNumber(ctx context.Context, gameID int64) (int64, error)

	// ExistsDrawNumber reports whether a draw number is already taken
	ExistsDrawNumber(ctx context.Context, gameID, drawNumber int64) (bool, error)

	// CompleteSettlement persists the UPCOMING -> COMPLETED transition with
	// winning numbers, division results and totals. Fails if the draw is no
	// longer UPCOMING.
	CompleteSettlement(ctx context.Context, draw *entities.Draw) error

	// UpdateJackpot writes the jackpot snapshot of an UPCOMING draw
	UpdateJackpot(ctx context.Context, drawID, jackpotCents int64) error

	// IncrementTotalSales atomically adds to an UPCOMING draw's sales counter
	IncrementTotalSales(ctx context.Context, drawID, amountCents int64) error
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// CreateBatch inserts tickets in a single batch
	CreateBatch(ctx context.Context, tickets []*entities.Ticket) error

	// GetPendingByDraw returns all unresolved tickets for a draw
	GetPendingByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error)

	// GetByUserForDraw returns a user's tickets for a draw
	GetByUserForDraw(ctx context.Context, drawID, userID int64) ([]*entities.Ticket, error)

	// UpdateResults persists status and payout for settled tickets
	UpdateResults(ctx context.Context, tickets []*entities.Ticket) error

	// CountByDraw returns the ticket count for a draw
	CountByDraw(ctx context.Context, drawID int64) (int64, error)
}

// UserRepository defines the interface for user wallet access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Create creates a new user with a zero balance
	Create(ctx context.Context, email, username string) (*entities.User, error)

	// AdjustCredit atomically increments (or decrements) a user's balance
	// and returns the new balance. Decrements below zero fail.
	AdjustCredit(ctx context.Context, userID, deltaCents int64) (int64, error)
}

// WalletTransactionRepository defines the interface for the append-only ledger
type WalletTransactionRepository interface {
	// Record appends a new ledger entry
	Record(ctx context.Context, txn *entities.WalletTransaction) error

	// GetByUser returns a user's ledger entries, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.WalletTransaction, error)

	// SumByUserAndType returns the signed sum of a user's entries of a type
	SumByUserAndType(ctx context.Context, userID int64, txType entities.TransactionType) (int64, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the owning database
// transaction resolves
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events; called after commit
	Flush(ctx context.Context) error

	// Discard drops all buffered events; called on rollback
	Discard()
}
