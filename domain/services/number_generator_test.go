package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberGenerator_Draw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		min   int64
		max   int64
	}{
		{name: "classic 6 of 45", count: 6, min: 1, max: 45},
		{name: "single pick", count: 1, min: 1, max: 20},
		{name: "full pool", count: 10, min: 1, max: 10},
		{name: "large sparse pool", count: 7, min: 1, max: 10_000_000},
		{name: "offset range", count: 5, min: 100, max: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewNumberGenerator()
			picks, err := gen.Draw(tt.count, tt.min, tt.max)
			require.NoError(t, err)
			require.Len(t, picks, tt.count)

			seen := make(map[int64]struct{})
			for i, n := range picks {
				assert.GreaterOrEqual(t, n, tt.min)
				assert.LessOrEqual(t, n, tt.max)

				_, dup := seen[n]
				assert.False(t, dup, "number %d drawn twice", n)
				seen[n] = struct{}{}

				if i > 0 {
					assert.Greater(t, n, picks[i-1], "picks must be sorted ascending")
				}
			}
		})
	}
}

func TestNumberGenerator_Draw_RangeTooSmall(t *testing.T) {
	t.Parallel()

	gen := NewNumberGenerator()
	_, err := gen.Draw(10, 1, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeExhausted)
}

func TestNumberGenerator_Draw_InvalidCount(t *testing.T) {
	t.Parallel()

	gen := NewNumberGenerator()

	_, err := gen.Draw(0, 1, 45)
	assert.Error(t, err)

	_, err = gen.Draw(-3, 1, 45)
	assert.Error(t, err)
}

func TestNumberGenerator_Draw_FullPoolIsPermutation(t *testing.T) {
	t.Parallel()

	gen := NewNumberGenerator()
	picks, err := gen.Draw(8, 1, 8)
	require.NoError(t, err)

	// Drawing the whole pool must return every number exactly once
	for i, n := range picks {
		assert.Equal(t, int64(i+1), n)
	}
}
