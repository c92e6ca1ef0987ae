package entities

import (
	"fmt"
	"time"
)

// Game represents a lottery product that players buy tickets for.
// Prize divisions are captured as an ordered list; order is the
// match precedence (first match wins).
type Game struct {
	ID                  int64               `db:"id"`
	Slug                string              `db:"slug"`
	Name                string              `db:"name"`
	TicketPriceCents    int64               `db:"ticket_price_cents"`
	MainPickCount       int                 `db:"main_pick_count"`
	MainRangeMin        int64               `db:"main_range_min"`
	MainRangeMax        int64               `db:"main_range_max"`
	SpecialPickCount    int                 `db:"special_pick_count"`
	SpecialRangeMin     int64               `db:"special_range_min"`
	SpecialRangeMax     int64               `db:"special_range_max"`
	DrawFrequency       string              `db:"draw_frequency"`
	BaseJackpotCents    int64               `db:"base_jackpot_cents"`
	CurrentJackpotCents int64               `db:"current_jackpot_cents"`
	PrizeDivisions      []PrizeDivisionRule `db:"-"` // Parsed from prize_divisions JSONB
	Active              bool                `db:"active"`
	CreatedAt           time.Time           `db:"created_at"`
}

// HasSpecialNumbers returns true if the game draws a special ball pool
func (g *Game) HasSpecialNumbers() bool {
	return g.SpecialPickCount > 0
}

// MainPoolSize returns the count of possible main numbers
func (g *Game) MainPoolSize() int64 {
	return g.MainRangeMax - g.MainRangeMin + 1
}

// SpecialPoolSize returns the count of possible special numbers
func (g *Game) SpecialPoolSize() int64 {
	return g.SpecialRangeMax - g.SpecialRangeMin + 1
}

// JackpotSeed returns the jackpot to snapshot onto a newly scheduled draw
func (g *Game) JackpotSeed() int64 {
	if g.CurrentJackpotCents > 0 {
		return g.CurrentJackpotCents
	}
	return g.BaseJackpotCents
}

// TopDivisionLabel returns the label of the game's designated top prize tier.
// The first configured division is the top tier; games without parseable
// divisions fall back to the conventional "Jackpot" label.
func (g *Game) TopDivisionLabel() string {
	if len(g.PrizeDivisions) > 0 {
		return g.PrizeDivisions[0].Label
	}
	return "Jackpot"
}

// ValidateRanges checks that the number pools are large enough to draw the
// required count of unique numbers
func (g *Game) ValidateRanges() error {
	if g.MainPickCount <= 0 {
		return fmt.Errorf("game %s: main pick count must be positive", g.Slug)
	}
	if g.MainPoolSize() < int64(g.MainPickCount) {
		return fmt.Errorf("game %s: main range [%d,%d] too small for %d picks",
			g.Slug, g.MainRangeMin, g.MainRangeMax, g.MainPickCount)
	}
	if g.HasSpecialNumbers() && g.SpecialPoolSize() < int64(g.SpecialPickCount) {
		return fmt.Errorf("game %s: special range [%d,%d] too small for %d picks",
			g.Slug, g.SpecialRangeMin, g.SpecialRangeMax, g.SpecialPickCount)
	}
	return nil
}
