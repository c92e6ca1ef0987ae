package services

import (
	"context"
	"testing"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func horizonTestGame() *entities.Game {
	return &entities.Game{
		ID:                  1,
		Slug:                "test-lotto",
		DrawFrequency:       "saturday at 20",
		BaseJackpotCents:    50_000_000,
		CurrentJackpotCents: 75_000_000,
	}
}

func TestHorizonService_EnsureHorizon_BootstrapsEmptyGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drawRepo := new(testhelpers.MockDrawRepository)

	game := horizonTestGame()
	anchor := interfaces.HorizonAnchor{DrawNumber: 0, DrawDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	drawRepo.On("GetUpcomingByGame", ctx, int64(1)).Return([]*entities.Draw{}, nil)
	drawRepo.On("GetLatestDrawNumber", ctx, int64(1)).Return(int64(0), nil)
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), mock.AnythingOfType("int64")).Return(false, nil)

	var created []*entities.Draw
	drawRepo.On("Create", ctx, mock.AnythingOfType("*entities.Draw")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*entities.Draw))
	}).Return(nil)

	service := NewHorizonService(drawRepo)
	err := service.EnsureHorizon(ctx, game, anchor, 6)
	require.NoError(t, err)
	require.Len(t, created, 6)

	for i, draw := range created {
		// Numbers start at 1 and are gapless
		assert.Equal(t, int64(i+1), draw.DrawNumber)
		assert.Equal(t, entities.DrawStatusUpcoming, draw.Status)
		assert.Equal(t, game.CurrentJackpotCents, draw.JackpotCents)
		assert.Equal(t, time.Saturday, draw.ScheduledAt.In(drawZone).Weekday())
		if i > 0 {
			assert.True(t, draw.ScheduledAt.After(created[i-1].ScheduledAt), "dates must be chained forward")
		}
	}
}

func TestHorizonService_EnsureHorizon_TopsUpPartialQueue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drawRepo := new(testhelpers.MockDrawRepository)

	game := horizonTestGame()
	existing := []*entities.Draw{
		{ID: 1, GameID: 1, DrawNumber: 7, ScheduledAt: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), Status: entities.DrawStatusUpcoming},
		{ID: 2, GameID: 1, DrawNumber: 8, ScheduledAt: time.Date(2026, 1, 17, 10, 0, 0, 0, time.UTC), Status: entities.DrawStatusUpcoming},
	}

	drawRepo.On("GetUpcomingByGame", ctx, int64(1)).Return(existing, nil)
	drawRepo.On("GetLatestDrawNumber", ctx, int64(1)).Return(int64(8), nil)
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), mock.AnythingOfType("int64")).Return(false, nil)

	var created []*entities.Draw
	drawRepo.On("Create", ctx, mock.AnythingOfType("*entities.Draw")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*entities.Draw))
	}).Return(nil)

	service := NewHorizonService(drawRepo)
	err := service.EnsureHorizon(ctx, game, interfaces.HorizonAnchor{DrawDate: time.Now().UTC()}, 5)
	require.NoError(t, err)

	// 2 already queued, 3 more to reach the target
	require.Len(t, created, 3)
	assert.Equal(t, int64(9), created[0].DrawNumber)
	assert.Equal(t, int64(10), created[1].DrawNumber)
	assert.Equal(t, int64(11), created[2].DrawNumber)

	// Dates chain from the latest scheduled draw, not from now
	assert.True(t, created[0].ScheduledAt.After(existing[1].ScheduledAt))
}

func TestHorizonService_EnsureHorizon_SkipsTakenNumbers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drawRepo := new(testhelpers.MockDrawRepository)

	game := horizonTestGame()

	drawRepo.On("GetUpcomingByGame", ctx, int64(1)).Return([]*entities.Draw{}, nil)
	drawRepo.On("GetLatestDrawNumber", ctx, int64(1)).Return(int64(3), nil)

	// Number 4 is taken by a concurrent writer; 5 and 6 are free
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), int64(4)).Return(true, nil)
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), int64(5)).Return(false, nil)
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), int64(6)).Return(false, nil)

	var created []*entities.Draw
	drawRepo.On("Create", ctx, mock.AnythingOfType("*entities.Draw")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*entities.Draw))
	}).Return(nil)

	service := NewHorizonService(drawRepo)
	err := service.EnsureHorizon(ctx, game, interfaces.HorizonAnchor{DrawDate: time.Now().UTC()}, 2)
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, int64(5), created[0].DrawNumber)
	assert.Equal(t, int64(6), created[1].DrawNumber)
}

func TestHorizonService_EnsureHorizon_IterationCap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drawRepo := new(testhelpers.MockDrawRepository)

	game := horizonTestGame()

	drawRepo.On("GetUpcomingByGame", ctx, int64(1)).Return([]*entities.Draw{}, nil)
	drawRepo.On("GetLatestDrawNumber", ctx, int64(1)).Return(int64(0), nil)

	// Every number reads as taken: the loop must give up instead of spinning
	drawRepo.On("ExistsDrawNumber", ctx, int64(1), mock.AnythingOfType("int64")).Return(true, nil)

	service := NewHorizonService(drawRepo)
	err := service.EnsureHorizon(ctx, game, interfaces.HorizonAnchor{DrawDate: time.Now().UTC()}, 6)

	assert.ErrorIs(t, err, ErrHorizonIterationCap)
	drawRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
