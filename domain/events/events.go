package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketsPurchased  EventType = "tickets_purchased"
	EventTypeDrawSettled       EventType = "draw_settled"
	EventTypePayoutAwarded     EventType = "payout_awarded"
	EventTypeJackpotRolledOver EventType = "jackpot_rolled_over"
	EventTypeWalletChanged     EventType = "wallet_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketsPurchasedEvent represents tickets sold against an upcoming draw
type TicketsPurchasedEvent struct {
	UserID         int64
	GameID         int64
	DrawID         int64
	Quantity       int
	TotalCostCents int64
}

func (e TicketsPurchasedEvent) Type() EventType {
	return EventTypeTicketsPurchased
}

// DrawSettledEvent represents a draw that completed settlement
type DrawSettledEvent struct {
	GameID           int64
	DrawID           int64
	DrawNumber       int64
	WinningMain      []int64
	WinningSpecial   []int64
	WinnersCount     int64
	TotalPayoutCents int64
}

func (e DrawSettledEvent) Type() EventType {
	return EventTypeDrawSettled
}

// PayoutAwardedEvent represents one winner's prize payment. It doubles as
// the winner-notification dispatch: flushed to the message bus only after
// the settlement transaction commits.
type PayoutAwardedEvent struct {
	UserID      int64
	Email       string
	GameName    string
	DrawID      int64
	Division    string
	AmountCents int64
}

func (e PayoutAwardedEvent) Type() EventType {
	return EventTypePayoutAwarded
}

// JackpotRolledOverEvent represents the jackpot transition after settlement
type JackpotRolledOverEvent struct {
	GameID           int64
	SettledDrawID    int64
	NextJackpotCents int64
	Reset            bool // true when the jackpot was hit and reset to base
}

func (e JackpotRolledOverEvent) Type() EventType {
	return EventTypeJackpotRolledOver
}

// WalletChangedEvent represents a balance change that occurred
type WalletChangedEvent struct {
	UserID          int64
	TransactionType string
	ChangeAmount    int64
	NewBalance      int64
}

func (e WalletChangedEvent) Type() EventType {
	return EventTypeWalletChanged
}
