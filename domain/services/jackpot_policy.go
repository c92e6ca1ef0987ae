package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// minimumRolloverIncrementCents guarantees visible jackpot growth on a
// rollover even when a draw recorded no sales.
const minimumRolloverIncrementCents = 1000

// jackpotPolicy owns the write path of Game.CurrentJackpotCents: reset to
// base when the top division was hit, otherwise carry the pool forward grown
// by the draw's sales. The new value is also snapshotted onto the game's
// earliest-dated UPCOMING draw.
type jackpotPolicy struct {
	gameRepo       interfaces.GameRepository
	drawRepo       interfaces.DrawRepository
	eventPublisher interfaces.EventPublisher
}

// NewJackpotPolicy creates a new jackpot rollover policy
func NewJackpotPolicy(
	gameRepo interfaces.GameRepository,
	drawRepo interfaces.DrawRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.JackpotPolicy {
	return &jackpotPolicy{
		gameRepo:       gameRepo,
		drawRepo:       drawRepo,
		eventPublisher: eventPublisher,
	}
}

// ApplyRollover computes and persists the next jackpot after a settlement
func (p *jackpotPolicy) ApplyRollover(ctx context.Context, game *entities.Game, settled *entities.Draw, results []entities.DivisionResult) (int64, error) {
	topLabel := game.TopDivisionLabel()
	jackpotHit := false
	for _, result := range results {
		if result.Type == topLabel && result.WinnersCount > 0 {
			jackpotHit = true
			break
		}
	}

	var next int64
	if jackpotHit {
		next = game.BaseJackpotCents
	} else {
		increment := settled.TotalSalesCents
		if increment < minimumRolloverIncrementCents {
			increment = minimumRolloverIncrementCents
		}
		next = settled.EffectiveJackpot(game.BaseJackpotCents) + increment
	}

	if err := p.gameRepo.UpdateCurrentJackpot(ctx, game.ID, next); err != nil {
		return 0, fmt.Errorf("failed to update game jackpot: %w", err)
	}
	game.CurrentJackpotCents = next

	// Horizon maintenance may have queued several draws already; the
	// rolled-over pool lands on the earliest-dated one.
	nextDraw, err := p.drawRepo.GetNextUpcoming(ctx, game.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to find next upcoming draw: %w", err)
	}
	if nextDraw != nil {
		if err := p.drawRepo.UpdateJackpot(ctx, nextDraw.ID, next); err != nil {
			return 0, fmt.Errorf("failed to update next draw jackpot: %w", err)
		}
	}

	if err := p.eventPublisher.Publish(events.JackpotRolledOverEvent{
		GameID:           game.ID,
		SettledDrawID:    settled.ID,
		NextJackpotCents: next,
		Reset:            jackpotHit,
	}); err != nil {
		log.WithError(err).Error("Failed to publish jackpot rollover event")
	}

	return next, nil
}
