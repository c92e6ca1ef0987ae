package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"lotto/domain/interfaces"
)

// ErrRangeExhausted is returned when a number range is too small to draw the
// requested count of unique numbers. Surfaced distinctly so a game
// configuration bug is visible to operators instead of looping forever.
var ErrRangeExhausted = errors.New("number range too small for requested picks")

// denseThreshold is the pool size below which we always enumerate the pool.
// Enumeration is fast and memory-bounded at this size even when the picks
// cover most of the range.
const denseThreshold = 1 << 16

// NumberGenerator draws unique uniform random numbers within a closed range
type NumberGenerator struct{}

// NewNumberGenerator creates a new number generator
func NewNumberGenerator() interfaces.NumberDrawer {
	return &NumberGenerator{}
}

// Draw returns count distinct numbers in [min,max], sorted ascending
func (g *NumberGenerator) Draw(count int, min, max int64) ([]int64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pick count must be positive, got %d", count)
	}
	poolSize := max - min + 1
	if poolSize < int64(count) {
		return nil, fmt.Errorf("%w: need %d from [%d,%d]", ErrRangeExhausted, count, min, max)
	}

	var (
		picks []int64
		err   error
	)
	// Enumerate small pools or dense picks; retry with collision checking on
	// large sparse pools where collisions are rare.
	if poolSize <= denseThreshold || int64(count)*2 >= poolSize {
		picks, err = drawFromPool(count, min, poolSize)
	} else {
		picks, err = drawWithRetry(count, min, poolSize)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(picks, func(i, j int) bool { return picks[i] < picks[j] })
	return picks, nil
}

// drawFromPool enumerates the pool and partially Fisher-Yates shuffles the
// first count elements
func drawFromPool(count int, min, poolSize int64) ([]int64, error) {
	pool := make([]int64, poolSize)
	for i := int64(0); i < poolSize; i++ {
		pool[i] = min + i
	}

	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return nil, fmt.Errorf("random generation failed: %w", err)
		}
		j := i + int(n.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count], nil
}

// drawWithRetry generates random numbers with collision checking
func drawWithRetry(count int, min, poolSize int64) ([]int64, error) {
	picks := make([]int64, 0, count)
	seen := make(map[int64]struct{}, count)

	for len(picks) < count {
		n, err := rand.Int(rand.Reader, big.NewInt(poolSize))
		if err != nil {
			return nil, fmt.Errorf("random generation failed: %w", err)
		}
		num := min + n.Int64()
		if _, dup := seen[num]; dup {
			continue
		}
		seen[num] = struct{}{}
		picks = append(picks, num)
	}
	return picks, nil
}
