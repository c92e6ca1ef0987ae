package entities

import (
	"time"
)

// DrawStatus is the lifecycle state of a scheduled draw
type DrawStatus string

const (
	DrawStatusUpcoming  DrawStatus = "UPCOMING"
	DrawStatusCompleted DrawStatus = "COMPLETED"
)

// DivisionResult is the persisted settlement outcome of one prize division
type DivisionResult struct {
	Type         string `json:"type"`
	PoolCents    int64  `json:"pool_cents"`
	WinnersCount int64  `json:"winners_count"`
	EachCents    int64  `json:"each_cents"`
}

// Draw represents one scheduled instance of a game's lottery event.
// Draw numbers are sequential and gapless per game. A draw transitions
// UPCOMING -> COMPLETED exactly once, during settlement.
type Draw struct {
	ID               int64            `db:"id"`
	GameID           int64            `db:"game_id"`
	DrawNumber       int64            `db:"draw_number"`
	ScheduledAt      time.Time        `db:"scheduled_at"`
	Status           DrawStatus       `db:"status"`
	WinningMain      []int64          `db:"winning_main"`    // empty until settled
	WinningSpecial   []int64          `db:"winning_special"` // empty until settled
	JackpotCents     int64            `db:"jackpot_cents"`   // snapshotted from game at scheduling
	TotalSalesCents  int64            `db:"total_sales_cents"`
	WinnersCount     int64            `db:"winners_count"`
	TotalPayoutCents int64            `db:"total_payout_cents"`
	DivisionResults  []DivisionResult `db:"-"` // persisted as JSONB after settlement
	CompletedAt      *time.Time       `db:"completed_at"`
	CreatedAt        time.Time        `db:"created_at"`
}

// IsCompleted returns true once the draw has been settled
func (d *Draw) IsCompleted() bool {
	return d.Status == DrawStatusCompleted
}

// IsDue returns true if the draw is eligible for settlement at the given time
func (d *Draw) IsDue(now time.Time) bool {
	return d.Status == DrawStatusUpcoming && !d.ScheduledAt.After(now)
}

// EffectiveJackpot returns the prize pool for this draw, falling back to the
// game's base jackpot when no snapshot was recorded
func (d *Draw) EffectiveJackpot(baseJackpotCents int64) int64 {
	if d.JackpotCents > 0 {
		return d.JackpotCents
	}
	return baseJackpotCents
}

// Complete marks the draw settled with its winning numbers and totals
func (d *Draw) Complete(winningMain, winningSpecial []int64, results []DivisionResult, winnersCount, totalPayoutCents int64) {
	d.Status = DrawStatusCompleted
	d.WinningMain = winningMain
	d.WinningSpecial = winningSpecial
	d.DivisionResults = results
	d.WinnersCount = winnersCount
	d.TotalPayoutCents = totalPayoutCents
	now := time.Now().UTC()
	d.CompletedAt = &now
}
