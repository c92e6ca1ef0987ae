package entities

import (
	"errors"
	"fmt"
	"time"
)

// TicketStatus is the resolution state of a purchased ticket
type TicketStatus string

const (
	TicketStatusPending TicketStatus = "PENDING"
	TicketStatusWon     TicketStatus = "WON"
	TicketStatusLost    TicketStatus = "LOST"
)

// Ticket is a purchased entry against a specific draw. Numbers are fixed at
// purchase; status transitions PENDING -> WON/LOST exactly once, during
// settlement of its draw.
type Ticket struct {
	ID             int64        `db:"id"`
	UserID         int64        `db:"user_id"`
	GameID         int64        `db:"game_id"`
	DrawID         int64        `db:"draw_id"`
	MainNumbers    []int64      `db:"main_numbers"`
	SpecialNumbers []int64      `db:"special_numbers"`
	PriceCents     int64        `db:"price_cents"`
	Status         TicketStatus `db:"status"`
	PayoutCents    int64        `db:"payout_cents"`
	PurchasedAt    time.Time    `db:"purchased_at"`
}

// IsResolved returns true once the ticket has been settled
func (t *Ticket) IsResolved() bool {
	return t.Status != TicketStatusPending
}

// MatchCounts returns the intersection sizes between the ticket's numbers and
// the draw's winning numbers
func (t *Ticket) MatchCounts(winningMain, winningSpecial []int64) (int, int) {
	return intersectCount(t.MainNumbers, winningMain), intersectCount(t.SpecialNumbers, winningSpecial)
}

// MarkWon resolves the ticket as a winner with its per-winner payout
func (t *Ticket) MarkWon(payoutCents int64) {
	t.Status = TicketStatusWon
	t.PayoutCents = payoutCents
}

// MarkLost resolves the ticket as a loser
func (t *Ticket) MarkLost() {
	t.Status = TicketStatusLost
	t.PayoutCents = 0
}

func intersectCount(a, b []int64) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[int64]struct{}, len(b))
	for _, n := range b {
		set[n] = struct{}{}
	}
	count := 0
	for _, n := range a {
		if _, ok := set[n]; ok {
			count++
		}
	}
	return count
}

// ValidateChosenNumbers checks a player's picks against the game's rules:
// correct counts, all within range, all distinct.
func ValidateChosenNumbers(game *Game, main, special []int64) error {
	if len(main) != game.MainPickCount {
		return fmt.Errorf("expected %d main numbers, got %d", game.MainPickCount, len(main))
	}
	if err := validatePicks(main, game.MainRangeMin, game.MainRangeMax); err != nil {
		return fmt.Errorf("main numbers: %w", err)
	}

	if game.HasSpecialNumbers() {
		if len(special) != game.SpecialPickCount {
			return fmt.Errorf("expected %d special numbers, got %d", game.SpecialPickCount, len(special))
		}
		if err := validatePicks(special, game.SpecialRangeMin, game.SpecialRangeMax); err != nil {
			return fmt.Errorf("special numbers: %w", err)
		}
	} else if len(special) != 0 {
		return errors.New("game has no special numbers")
	}
	return nil
}

func validatePicks(numbers []int64, min, max int64) error {
	seen := make(map[int64]struct{}, len(numbers))
	for _, n := range numbers {
		if n < min || n > max {
			return fmt.Errorf("number %d outside range [%d,%d]", n, min, max)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("number %d chosen twice", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
