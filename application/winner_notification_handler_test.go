package application

import (
	"context"
	"errors"
	"testing"

	"lotto/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	Emails   []string
	Messages []string
	Err      error
}

func (n *fakeNotifier) NotifyWinner(ctx context.Context, email, message string) error {
	if n.Err != nil {
		return n.Err
	}
	n.Emails = append(n.Emails, email)
	n.Messages = append(n.Messages, message)
	return nil
}

func TestWinnerNotificationHandler_HandlePayoutAwarded(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	handler := NewWinnerNotificationHandler(notifier)

	err := handler.HandlePayoutAwarded(context.Background(), events.PayoutAwardedEvent{
		UserID:      1,
		Email:       "winner@example.com",
		GameName:    "Saturday Lotto",
		DrawID:      10,
		Division:    "Division 1",
		AmountCents: 7_000_000,
	})
	require.NoError(t, err)

	require.Len(t, notifier.Emails, 1)
	assert.Equal(t, "winner@example.com", notifier.Emails[0])
	assert.Contains(t, notifier.Messages[0], "Saturday Lotto")
	assert.Contains(t, notifier.Messages[0], "Division 1")
	assert.Contains(t, notifier.Messages[0], "$70,000.00")
}

func TestWinnerNotificationHandler_WrongEventType(t *testing.T) {
	t.Parallel()

	handler := NewWinnerNotificationHandler(&fakeNotifier{})

	err := handler.HandlePayoutAwarded(context.Background(), events.DrawSettledEvent{DrawID: 1})
	assert.Error(t, err)
}

func TestWinnerNotificationHandler_DeliveryFailureSwallowed(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{Err: errors.New("smtp down")}
	handler := NewWinnerNotificationHandler(notifier)

	// A broken notifier must not fail the event pipeline
	err := handler.HandlePayoutAwarded(context.Background(), events.PayoutAwardedEvent{
		Email:       "winner@example.com",
		GameName:    "Saturday Lotto",
		Division:    "Division 1",
		AmountCents: 100,
	})
	assert.NoError(t, err)
}
