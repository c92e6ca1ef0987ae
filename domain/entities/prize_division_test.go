package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrizeDivisions(t *testing.T) {
	t.Parallel()

	raw := []byte(`[
		{"label": "Jackpot", "match_main": 6, "percentage": 0.7},
		{"label": "Division 2", "match_main": 5, "match_special": 1, "percentage": 0.1},
		{"label": "Division 3", "match_main": 4, "fixed_cents": 5000}
	]`)

	rules, dropped, err := ParsePrizeDivisions(raw)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rules, 3)

	assert.Equal(t, "Jackpot", rules[0].Label)
	assert.Equal(t, PayoutPercentage, rules[0].Kind)
	assert.Equal(t, int64(700_000), rules[0].PercentMillionths)
	assert.Nil(t, rules[0].MatchSpecial)

	require.NotNil(t, rules[1].MatchSpecial)
	assert.Equal(t, 1, *rules[1].MatchSpecial)

	assert.Equal(t, PayoutFixed, rules[2].Kind)
	assert.Equal(t, int64(5000), rules[2].FixedCents)
}

func TestParsePrizeDivisions_DropsMalformedEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		wantRules   int
		wantDropped int
	}{
		{
			name:        "missing label",
			raw:         `[{"match_main": 6, "percentage": 0.7}]`,
			wantRules:   0,
			wantDropped: 1,
		},
		{
			name:        "both payout variants set",
			raw:         `[{"label": "Bad", "match_main": 6, "percentage": 0.7, "fixed_cents": 100}]`,
			wantRules:   0,
			wantDropped: 1,
		},
		{
			name:        "neither payout variant set",
			raw:         `[{"label": "Bad", "match_main": 6}]`,
			wantRules:   0,
			wantDropped: 1,
		},
		{
			name:        "percentage above one",
			raw:         `[{"label": "Bad", "match_main": 6, "percentage": 1.5}]`,
			wantRules:   0,
			wantDropped: 1,
		},
		{
			name:        "negative match count",
			raw:         `[{"label": "Bad", "match_main": -1, "percentage": 0.5}]`,
			wantRules:   0,
			wantDropped: 1,
		},
		{
			name: "good entries survive bad neighbours",
			raw: `[
				{"label": "Good", "match_main": 6, "percentage": 0.7},
				{"label": "Bad", "match_main": 5},
				{"label": "Also good", "match_main": 4, "fixed_cents": 100}
			]`,
			wantRules:   2,
			wantDropped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules, dropped, err := ParsePrizeDivisions([]byte(tt.raw))
			require.NoError(t, err)
			assert.Len(t, rules, tt.wantRules)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

func TestParsePrizeDivisions_DocumentLevelFailure(t *testing.T) {
	t.Parallel()

	_, _, err := ParsePrizeDivisions([]byte(`{"not": "an array"}`))
	assert.Error(t, err)

	rules, dropped, err := ParsePrizeDivisions(nil)
	assert.NoError(t, err)
	assert.Nil(t, rules)
	assert.Zero(t, dropped)
}

func TestParsePrizeDivisions_PercentagePrecision(t *testing.T) {
	t.Parallel()

	// 0.7 is not exactly representable in binary floating point; parsing
	// must still resolve to exactly 700000 millionths
	raw := []byte(`[{"label": "Jackpot", "match_main": 6, "percentage": 0.7}]`)
	rules, _, err := ParsePrizeDivisions(raw)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, int64(700_000), rules[0].PercentMillionths)
}

func TestMatchDivision_FirstMatchWins(t *testing.T) {
	t.Parallel()

	one := 1
	rules := []PrizeDivisionRule{
		{Label: "Jackpot", MatchMain: 6, MatchSpecial: &one},
		{Label: "Division 2", MatchMain: 6},
		{Label: "Division 3", MatchMain: 5},
	}

	assert.Equal(t, 0, MatchDivision(rules, 6, 1))
	assert.Equal(t, 1, MatchDivision(rules, 6, 0))
	assert.Equal(t, 2, MatchDivision(rules, 5, 1))
	assert.Equal(t, -1, MatchDivision(rules, 4, 0))
	assert.Equal(t, -1, MatchDivision(nil, 6, 1))
}

func TestValidateDivisions(t *testing.T) {
	t.Parallel()

	one, two := 1, 2

	valid := []PrizeDivisionRule{
		{Label: "A", MatchMain: 6, MatchSpecial: &one},
		{Label: "B", MatchMain: 6, MatchSpecial: &two},
		{Label: "C", MatchMain: 5},
	}
	assert.NoError(t, ValidateDivisions(valid))

	// A wildcard special overlaps any specific special on the same main count
	overlapping := []PrizeDivisionRule{
		{Label: "A", MatchMain: 6},
		{Label: "B", MatchMain: 6, MatchSpecial: &one},
	}
	err := ValidateDivisions(overlapping)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")

	duplicate := []PrizeDivisionRule{
		{Label: "A", MatchMain: 5, MatchSpecial: &one},
		{Label: "B", MatchMain: 5, MatchSpecial: &one},
	}
	assert.Error(t, ValidateDivisions(duplicate))
}
