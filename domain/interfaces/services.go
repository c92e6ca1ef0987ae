package interfaces

import (
	"context"
	"time"

	"lotto/domain/entities"
)

// NumberDrawer draws unique random numbers within an inclusive range
type NumberDrawer interface {
	// Draw returns count distinct numbers in [min,max], sorted ascending
	Draw(count int, min, max int64) ([]int64, error)
}

// SettlementResult summarizes one settled draw
type SettlementResult struct {
	Draw             *entities.Draw
	WinningMain      []int64
	WinningSpecial   []int64
	DivisionResults  []entities.DivisionResult
	WinnersCount     int64
	TotalPayoutCents int64
}

// SettlementService settles exactly one due draw. All writes happen through
// the repositories bound to the caller's unit of work, so the whole
// settlement commits or rolls back atomically with it.
type SettlementService interface {
	Settle(ctx context.Context, draw *entities.Draw, game *entities.Game) (*SettlementResult, error)
}

// JackpotPolicy computes and persists the jackpot transition after a draw
// settles: reset to base when the top division was hit, otherwise carry the
// pool forward grown by sales.
type JackpotPolicy interface {
	// ApplyRollover returns the next jackpot value after writing it to the
	// game and to the earliest-dated UPCOMING draw, if one exists.
	ApplyRollover(ctx context.Context, game *entities.Game, settled *entities.Draw, results []entities.DivisionResult) (int64, error)
}

// HorizonAnchor seeds horizon maintenance for games without any draws yet
type HorizonAnchor struct {
	DrawNumber int64
	DrawDate   time.Time
}

// HorizonService keeps a rolling window of future UPCOMING draws per game
type HorizonService interface {
	EnsureHorizon(ctx context.Context, game *entities.Game, anchor HorizonAnchor, targetCount int) error
}

// PurchaseResult summarizes a ticket sale
type PurchaseResult struct {
	Tickets         []*entities.Ticket
	TotalCostCents  int64
	NewBalanceCents int64
	Draw            *entities.Draw
}

// PurchaseService sells tickets against a game's next upcoming draw
type PurchaseService interface {
	// PurchaseTicket buys one ticket with player-chosen numbers
	PurchaseTicket(ctx context.Context, userID int64, gameSlug string, main, special []int64) (*PurchaseResult, error)

	// QuickPick buys tickets with randomly generated numbers
	QuickPick(ctx context.Context, userID int64, gameSlug string, quantity int) (*PurchaseResult, error)
}
