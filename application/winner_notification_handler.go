package application

import (
	"context"
	"fmt"

	"lotto/domain/events"
	"lotto/domain/utils"

	log "github.com/sirupsen/logrus"
)

// WinnerNotifier delivers a prize notification to a winner. Implementations
// might send email or push messages; delivery is best-effort and happens
// after the settlement transaction has committed.
type WinnerNotifier interface {
	NotifyWinner(ctx context.Context, email, message string) error
}

// LogWinnerNotifier writes winner notifications to the structured log.
// It stands in wherever no real delivery channel is configured.
type LogWinnerNotifier struct{}

// NotifyWinner logs the notification
func (LogWinnerNotifier) NotifyWinner(ctx context.Context, email, message string) error {
	log.WithFields(log.Fields{
		"email":   email,
		"message": message,
	}).Info("Winner notification")
	return nil
}

// WinnerNotificationHandler turns payout events into winner notifications
type WinnerNotificationHandler struct {
	notifier WinnerNotifier
}

// NewWinnerNotificationHandler creates a new winner notification handler
func NewWinnerNotificationHandler(notifier WinnerNotifier) *WinnerNotificationHandler {
	return &WinnerNotificationHandler{notifier: notifier}
}

// HandlePayoutAwarded processes a payout awarded event
func (h *WinnerNotificationHandler) HandlePayoutAwarded(ctx context.Context, event events.Event) error {
	payout, ok := event.(events.PayoutAwardedEvent)
	if !ok {
		return fmt.Errorf("expected PayoutAwardedEvent, got %T", event)
	}

	message := fmt.Sprintf("Congratulations! Your %s ticket won the %s prize: %s",
		payout.GameName, payout.Division, utils.FormatCents(payout.AmountCents))

	if err := h.notifier.NotifyWinner(ctx, payout.Email, message); err != nil {
		// Never fail the event pipeline over a notification
		log.WithFields(log.Fields{
			"userID": payout.UserID,
			"error":  err,
		}).Error("Failed to deliver winner notification")
	}
	return nil
}
