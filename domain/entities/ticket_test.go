package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicket_MatchCounts(t *testing.T) {
	t.Parallel()

	ticket := Ticket{
		MainNumbers:    []int64{1, 2, 3, 4, 5, 6},
		SpecialNumbers: []int64{7},
	}

	main, special := ticket.MatchCounts([]int64{4, 5, 6, 7, 8, 9}, []int64{7})
	assert.Equal(t, 3, main)
	assert.Equal(t, 1, special)

	main, special = ticket.MatchCounts([]int64{10, 11, 12, 13, 14, 15}, []int64{8})
	assert.Equal(t, 0, main)
	assert.Equal(t, 0, special)

	main, special = ticket.MatchCounts(nil, nil)
	assert.Equal(t, 0, main)
	assert.Equal(t, 0, special)
}

func TestTicket_Resolution(t *testing.T) {
	t.Parallel()

	won := Ticket{Status: TicketStatusPending}
	won.MarkWon(5000)
	assert.Equal(t, TicketStatusWon, won.Status)
	assert.Equal(t, int64(5000), won.PayoutCents)
	assert.True(t, won.IsResolved())

	lost := Ticket{Status: TicketStatusPending, PayoutCents: 123}
	lost.MarkLost()
	assert.Equal(t, TicketStatusLost, lost.Status)
	assert.Zero(t, lost.PayoutCents)
	assert.True(t, lost.IsResolved())

	pending := Ticket{Status: TicketStatusPending}
	assert.False(t, pending.IsResolved())
}

func TestValidateChosenNumbers(t *testing.T) {
	t.Parallel()

	game := &Game{
		Slug:          "test",
		MainPickCount: 6,
		MainRangeMin:  1,
		MainRangeMax:  45,
	}

	tests := []struct {
		name    string
		main    []int64
		special []int64
		wantErr string
	}{
		{name: "valid picks", main: []int64{1, 5, 12, 23, 34, 45}},
		{name: "too few numbers", main: []int64{1, 2, 3}, wantErr: "expected 6 main numbers"},
		{name: "out of range", main: []int64{1, 2, 3, 4, 5, 46}, wantErr: "outside range"},
		{name: "duplicate number", main: []int64{1, 2, 3, 4, 5, 5}, wantErr: "chosen twice"},
		{name: "special on special-less game", main: []int64{1, 2, 3, 4, 5, 6}, special: []int64{1}, wantErr: "no special numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateChosenNumbers(game, tt.main, tt.special)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChosenNumbers_WithSpecialPool(t *testing.T) {
	t.Parallel()

	game := &Game{
		Slug:             "test",
		MainPickCount:    7,
		MainRangeMin:     1,
		MainRangeMax:     35,
		SpecialPickCount: 1,
		SpecialRangeMin:  1,
		SpecialRangeMax:  20,
	}

	assert.NoError(t, ValidateChosenNumbers(game, []int64{1, 2, 3, 4, 5, 6, 7}, []int64{15}))
	assert.Error(t, ValidateChosenNumbers(game, []int64{1, 2, 3, 4, 5, 6, 7}, nil))
	assert.Error(t, ValidateChosenNumbers(game, []int64{1, 2, 3, 4, 5, 6, 7}, []int64{21}))
}
