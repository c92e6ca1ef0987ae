package services

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jackpotTestGame() *entities.Game {
	return &entities.Game{
		ID:                  1,
		Slug:                "test-lotto",
		BaseJackpotCents:    50_000_000,
		CurrentJackpotCents: 120_000_000,
		PrizeDivisions: []entities.PrizeDivisionRule{
			{Label: "Jackpot", MatchMain: 6, Kind: entities.PayoutPercentage, PercentMillionths: 700_000},
			{Label: "Division 2", MatchMain: 5, Kind: entities.PayoutFixed, FixedCents: 5000},
		},
	}
}

func TestJackpotPolicy_ApplyRollover_ResetOnJackpotHit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := new(testhelpers.MockGameRepository)
	drawRepo := new(testhelpers.MockDrawRepository)
	publisher := new(testhelpers.MockEventPublisher)

	game := jackpotTestGame()
	settled := &entities.Draw{ID: 10, GameID: 1, JackpotCents: 120_000_000, TotalSalesCents: 30_000, Status: entities.DrawStatusCompleted}
	results := []entities.DivisionResult{
		{Type: "Jackpot", PoolCents: 84_000_000, WinnersCount: 1, EachCents: 84_000_000},
	}

	gameRepo.On("UpdateCurrentJackpot", ctx, int64(1), int64(50_000_000)).Return(nil)
	nextDraw := &entities.Draw{ID: 11, GameID: 1, Status: entities.DrawStatusUpcoming}
	drawRepo.On("GetNextUpcoming", ctx, int64(1)).Return(nextDraw, nil)
	drawRepo.On("UpdateJackpot", ctx, int64(11), int64(50_000_000)).Return(nil)
	publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		rolled, ok := e.(events.JackpotRolledOverEvent)
		return ok && rolled.Reset && rolled.NextJackpotCents == 50_000_000
	})).Return(nil)

	policy := NewJackpotPolicy(gameRepo, drawRepo, publisher)
	next, err := policy.ApplyRollover(ctx, game, settled, results)

	require.NoError(t, err)
	assert.Equal(t, int64(50_000_000), next)
	assert.Equal(t, int64(50_000_000), game.CurrentJackpotCents)

	gameRepo.AssertExpectations(t)
	drawRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestJackpotPolicy_ApplyRollover_CarriesForwardOnMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := new(testhelpers.MockGameRepository)
	drawRepo := new(testhelpers.MockDrawRepository)
	publisher := new(testhelpers.MockEventPublisher)

	game := jackpotTestGame()
	settled := &entities.Draw{ID: 10, GameID: 1, JackpotCents: 120_000_000, TotalSalesCents: 30_000, Status: entities.DrawStatusCompleted}

	// Lower division winners don't reset the jackpot
	results := []entities.DivisionResult{
		{Type: "Division 2", PoolCents: 5000, WinnersCount: 3, EachCents: 1666},
	}

	want := int64(120_000_000 + 30_000)
	gameRepo.On("UpdateCurrentJackpot", ctx, int64(1), want).Return(nil)
	nextDraw := &entities.Draw{ID: 11, GameID: 1, Status: entities.DrawStatusUpcoming}
	drawRepo.On("GetNextUpcoming", ctx, int64(1)).Return(nextDraw, nil)
	drawRepo.On("UpdateJackpot", ctx, int64(11), want).Return(nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	policy := NewJackpotPolicy(gameRepo, drawRepo, publisher)
	next, err := policy.ApplyRollover(ctx, game, settled, results)

	require.NoError(t, err)
	assert.Equal(t, want, next)

	gameRepo.AssertExpectations(t)
	drawRepo.AssertExpectations(t)
}

func TestJackpotPolicy_ApplyRollover_MinimumIncrement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := new(testhelpers.MockGameRepository)
	drawRepo := new(testhelpers.MockDrawRepository)
	publisher := new(testhelpers.MockEventPublisher)

	game := jackpotTestGame()

	// No sales at all: the jackpot still grows by the minimum increment
	settled := &entities.Draw{ID: 10, GameID: 1, JackpotCents: 120_000_000, TotalSalesCents: 0, Status: entities.DrawStatusCompleted}

	want := int64(120_000_000 + minimumRolloverIncrementCents)
	gameRepo.On("UpdateCurrentJackpot", ctx, int64(1), want).Return(nil)
	drawRepo.On("GetNextUpcoming", ctx, int64(1)).Return((*entities.Draw)(nil), nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	policy := NewJackpotPolicy(gameRepo, drawRepo, publisher)
	next, err := policy.ApplyRollover(ctx, game, settled, nil)

	require.NoError(t, err)
	assert.Equal(t, want, next)

	// No upcoming draw to snapshot onto
	drawRepo.AssertNotCalled(t, "UpdateJackpot", mock.Anything, mock.Anything, mock.Anything)
}
