package utils

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ApplyWalletChange is the single entry point for all balance changes: it
// atomically adjusts the user's credit, appends the paired ledger row in the
// same transaction, and emits a wallet change event. Returns the new balance.
func ApplyWalletChange(
	ctx context.Context,
	userRepo interfaces.UserRepository,
	walletRepo interfaces.WalletTransactionRepository,
	eventPublisher interfaces.EventPublisher,
	txn *entities.WalletTransaction,
) (int64, error) {
	if err := txn.Validate(); err != nil {
		return 0, fmt.Errorf("invalid wallet transaction: %w", err)
	}

	newBalance, err := userRepo.AdjustCredit(ctx, txn.UserID, txn.AmountCents)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust credit: %w", err)
	}

	if err := walletRepo.Record(ctx, txn); err != nil {
		return 0, fmt.Errorf("failed to record wallet transaction: %w", err)
	}

	event := events.WalletChangedEvent{
		UserID:          txn.UserID,
		TransactionType: txn.Type.String(),
		ChangeAmount:    txn.AmountCents,
		NewBalance:      newBalance,
	}
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish wallet change event")
	}

	return newBalance, nil
}
