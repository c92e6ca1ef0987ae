package services

import (
	"lotto/domain/entities"
)

// PayoutCalculator computes division prize pools and per-winner shares.
// Both divisions use floor arithmetic; remainder cents from percentage
// pools and from splitting among winners are not redistributed.
type PayoutCalculator struct{}

// PoolCents returns the total prize pool for a division given the draw's
// effective jackpot pool
func (PayoutCalculator) PoolCents(rule entities.PrizeDivisionRule, jackpotPoolCents int64) int64 {
	if rule.Kind == entities.PayoutFixed {
		return rule.FixedCents
	}
	return jackpotPoolCents * rule.PercentMillionths / 1_000_000
}

// EachCents returns the per-winner share of a pool. Only meaningful when
// winnerCount > 0; divisions with zero winners produce no result row.
func (PayoutCalculator) EachCents(poolCents int64, winnerCount int) int64 {
	if winnerCount <= 0 {
		return 0
	}
	return poolCents / int64(winnerCount)
}
