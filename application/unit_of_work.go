package application

import (
	"context"

	"lotto/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// Repositories obtained from a unit of work share one database transaction;
// events published through EventBus are buffered and only flushed after the
// transaction commits.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events
	Rollback() error

	// Repository getters
	GameRepository() interfaces.GameRepository
	DrawRepository() interfaces.DrawRepository
	TicketRepository() interfaces.TicketRepository
	UserRepository() interfaces.UserRepository
	WalletTransactionRepository() interfaces.WalletTransactionRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
