package services

import (
	"testing"

	"lotto/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestPayoutCalculator_PoolCents(t *testing.T) {
	t.Parallel()

	calc := PayoutCalculator{}

	tests := []struct {
		name    string
		rule    entities.PrizeDivisionRule
		jackpot int64
		want    int64
	}{
		{
			name:    "seventy percent of one million dollars",
			rule:    entities.PrizeDivisionRule{Kind: entities.PayoutPercentage, PercentMillionths: 700_000},
			jackpot: 100_000_000,
			want:    70_000_000,
		},
		{
			name:    "percentage with floor remainder",
			rule:    entities.PrizeDivisionRule{Kind: entities.PayoutPercentage, PercentMillionths: 333_333},
			jackpot: 1000,
			want:    333,
		},
		{
			name:    "fixed pool ignores jackpot",
			rule:    entities.PrizeDivisionRule{Kind: entities.PayoutFixed, FixedCents: 5000},
			jackpot: 100_000_000,
			want:    5000,
		},
		{
			name:    "tiny jackpot floors to zero",
			rule:    entities.PrizeDivisionRule{Kind: entities.PayoutPercentage, PercentMillionths: 100_000},
			jackpot: 5,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, calc.PoolCents(tt.rule, tt.jackpot))
		})
	}
}

func TestPayoutCalculator_EachCents(t *testing.T) {
	t.Parallel()

	calc := PayoutCalculator{}

	assert.Equal(t, int64(5000), calc.EachCents(5000, 1))
	assert.Equal(t, int64(1666), calc.EachCents(5000, 3))
	assert.Equal(t, int64(0), calc.EachCents(5000, 0))
	assert.Equal(t, int64(0), calc.EachCents(2, 3))
}

func TestPayoutCalculator_SharesNeverExceedPool(t *testing.T) {
	t.Parallel()

	calc := PayoutCalculator{}
	for winners := 1; winners <= 7; winners++ {
		each := calc.EachCents(100_000_001, winners)
		assert.LessOrEqual(t, each*int64(winners), int64(100_000_001))
	}
}
