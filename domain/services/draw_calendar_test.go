package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrawFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor string
		want       DrawFrequency
		wantErr    bool
	}{
		{
			name:       "weekly saturday",
			descriptor: "saturday at 20",
			want:       DrawFrequency{Weekday: time.Saturday, Hour: 20},
		},
		{
			name:       "daily",
			descriptor: "daily at 9",
			want:       DrawFrequency{Daily: true, Hour: 9},
		},
		{
			name:       "mixed case with whitespace",
			descriptor: "  Thursday AT 20 ",
			want:       DrawFrequency{Weekday: time.Thursday, Hour: 20},
		},
		{
			name:       "unknown weekday",
			descriptor: "someday at 20",
			wantErr:    true,
		},
		{
			name:       "hour out of range",
			descriptor: "monday at 24",
			wantErr:    true,
		},
		{
			name:       "garbage",
			descriptor: "whenever",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDrawFrequency(tt.descriptor)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrawFrequency_Next_Weekly(t *testing.T) {
	t.Parallel()

	freq := DrawFrequency{Weekday: time.Saturday, Hour: 20}

	// Wednesday 2026-01-07 12:00 AEST
	from := time.Date(2026, 1, 7, 12, 0, 0, 0, drawZone)
	next := freq.Next(from)

	assert.Equal(t, time.Saturday, next.In(drawZone).Weekday())
	assert.Equal(t, 20, next.In(drawZone).Hour())
	assert.Equal(t, 10, next.In(drawZone).Day())
	assert.True(t, next.After(from))
}

func TestDrawFrequency_Next_SameDayBoundary(t *testing.T) {
	t.Parallel()

	freq := DrawFrequency{Weekday: time.Saturday, Hour: 20}

	// Exactly at the slot: next occurrence must be strictly in the future
	slot := time.Date(2026, 1, 10, 20, 0, 0, 0, drawZone)
	next := freq.Next(slot)
	assert.Equal(t, slot.AddDate(0, 0, 7), next)

	// One second before the slot resolves to the same day
	justBefore := slot.Add(-time.Second)
	assert.Equal(t, slot, freq.Next(justBefore))
}

func TestDrawFrequency_Next_Daily(t *testing.T) {
	t.Parallel()

	freq := DrawFrequency{Daily: true, Hour: 9}

	from := time.Date(2026, 3, 2, 10, 30, 0, 0, drawZone)
	next := freq.Next(from)

	assert.Equal(t, 3, next.In(drawZone).Day())
	assert.Equal(t, 9, next.In(drawZone).Hour())
}

func TestNextOccurrence_FallbackCadence(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	next := NextOccurrence("not a real descriptor", from)

	local := next.In(drawZone)
	assert.Equal(t, time.Saturday, local.Weekday())
	assert.Equal(t, 20, local.Hour())
	assert.True(t, next.After(from))
}

func TestNextOccurrences_Chained(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := NextOccurrences("saturday at 20", from, 4)
	require.Len(t, times, 4)

	for i, ts := range times {
		assert.Equal(t, time.Saturday, ts.In(drawZone).Weekday())
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, ts.Sub(times[i-1]))
		}
	}
}
