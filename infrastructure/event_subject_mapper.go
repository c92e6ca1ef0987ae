package infrastructure

import (
	"fmt"

	"lotto/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeTicketsPurchased:
		return "tickets.purchased"
	case events.EventTypeDrawSettled:
		return "draws.settled"
	case events.EventTypePayoutAwarded:
		return "payouts.awarded"
	case events.EventTypeJackpotRolledOver:
		return "jackpots.rolled_over"
	case events.EventTypeWalletChanged:
		return "wallets.changed"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "tickets.purchased":
		return events.EventTypeTicketsPurchased
	case "draws.settled":
		return events.EventTypeDrawSettled
	case "payouts.awarded":
		return events.EventTypePayoutAwarded
	case "jackpots.rolled_over":
		return events.EventTypeJackpotRolledOver
	case "wallets.changed":
		return events.EventTypeWalletChanged
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"tickets.purchased",
		"draws.settled",
		"payouts.awarded",
		"jackpots.rolled_over",
		"wallets.changed",
	}
}
