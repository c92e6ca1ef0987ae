package entities

import (
	"encoding/json"
	"fmt"
	"math"
)

// PayoutKind discriminates how a division's prize pool is funded
type PayoutKind string

const (
	// PayoutPercentage pays a fraction of the draw's jackpot pool
	PayoutPercentage PayoutKind = "percentage"
	// PayoutFixed pays a fixed pool amount in cents
	PayoutFixed PayoutKind = "fixed"
)

// percentScale is the fixed-point scale used for percentage pools.
// Percentages are resolved to millionths at parse time so pool math
// stays in integer cents.
const percentScale = 1_000_000

// PrizeDivisionRule is one prize tier of a game. Rules are matched in
// configured order and the first matching rule wins, so rule sets must be
// authored without overlapping match predicates (see ValidateDivisions).
type PrizeDivisionRule struct {
	Label        string
	MatchMain    int
	MatchSpecial *int // nil means any special-match count qualifies
	Kind         PayoutKind
	// PercentMillionths holds the pool fraction in millionths when
	// Kind == PayoutPercentage (700000 = 70% of the pool).
	PercentMillionths int64
	// FixedCents holds the full division pool when Kind == PayoutFixed.
	FixedCents int64
}

// Matches reports whether a ticket with the given match counts falls into
// this division
func (r *PrizeDivisionRule) Matches(mainMatches, specialMatches int) bool {
	if mainMatches != r.MatchMain {
		return false
	}
	return r.MatchSpecial == nil || specialMatches == *r.MatchSpecial
}

// MatchDivision scans rules in configured order and returns the index of the
// first rule matching the given counts, or -1 if no rule matches.
func MatchDivision(rules []PrizeDivisionRule, mainMatches, specialMatches int) int {
	for i := range rules {
		if rules[i].Matches(mainMatches, specialMatches) {
			return i
		}
	}
	return -1
}

// prizeDivisionDoc is the JSONB wire form of a prize division. Exactly one
// of percentage and fixed_cents must be present.
type prizeDivisionDoc struct {
	Label        string   `json:"label"`
	MatchMain    *int     `json:"match_main"`
	MatchSpecial *int     `json:"match_special,omitempty"`
	Percentage   *float64 `json:"percentage,omitempty"`
	FixedCents   *int64   `json:"fixed_cents,omitempty"`
}

// ParsePrizeDivisions decodes a JSONB division config into ordered rules.
// Individual malformed entries are filtered out and reported in the second
// return value; only a document-level decode failure returns an error.
func ParsePrizeDivisions(raw []byte) ([]PrizeDivisionRule, int, error) {
	if len(raw) == 0 {
		return nil, 0, nil
	}

	var docs []prizeDivisionDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode prize divisions: %w", err)
	}

	rules := make([]PrizeDivisionRule, 0, len(docs))
	dropped := 0
	for _, doc := range docs {
		rule, ok := doc.toRule()
		if !ok {
			dropped++
			continue
		}
		rules = append(rules, rule)
	}
	return rules, dropped, nil
}

func (d prizeDivisionDoc) toRule() (PrizeDivisionRule, bool) {
	if d.Label == "" || d.MatchMain == nil || *d.MatchMain < 0 {
		return PrizeDivisionRule{}, false
	}
	if d.MatchSpecial != nil && *d.MatchSpecial < 0 {
		return PrizeDivisionRule{}, false
	}

	hasPercent := d.Percentage != nil
	hasFixed := d.FixedCents != nil
	if hasPercent == hasFixed {
		// Exactly one payout variant must be set
		return PrizeDivisionRule{}, false
	}

	rule := PrizeDivisionRule{
		Label:        d.Label,
		MatchMain:    *d.MatchMain,
		MatchSpecial: d.MatchSpecial,
	}
	if hasPercent {
		if *d.Percentage <= 0 || *d.Percentage > 1 {
			return PrizeDivisionRule{}, false
		}
		rule.Kind = PayoutPercentage
		rule.PercentMillionths = int64(math.Round(*d.Percentage * percentScale))
	} else {
		if *d.FixedCents <= 0 {
			return PrizeDivisionRule{}, false
		}
		rule.Kind = PayoutFixed
		rule.FixedCents = *d.FixedCents
	}
	return rule, true
}

// ValidateDivisions rejects rule sets where two rules could match the same
// (mainMatches, specialMatches) pair. This is a configuration-time check;
// settlement itself only applies first-match-wins.
func ValidateDivisions(rules []PrizeDivisionRule) error {
	for i := range rules {
		for j := i + 1; j < len(rules); j++ {
			if rules[i].MatchMain != rules[j].MatchMain {
				continue
			}
			a, b := rules[i].MatchSpecial, rules[j].MatchSpecial
			if a == nil || b == nil || *a == *b {
				return fmt.Errorf("prize divisions %q and %q overlap on %d main matches",
					rules[i].Label, rules[j].Label, rules[i].MatchMain)
			}
		}
	}
	return nil
}
