package services

import (
	"context"
	"errors"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ErrHorizonIterationCap is returned when horizon maintenance gives up on a
// game instead of looping over corrupted draw data. Settlement correctness
// is unaffected; future draw availability for the game needs operator
// attention.
var ErrHorizonIterationCap = errors.New("horizon maintenance iteration cap exceeded")

// horizonIterationSlack bounds the maintenance loop at target + slack
// iterations to guarantee termination.
const horizonIterationSlack = 10

// horizonService keeps a rolling window of future UPCOMING draws per game,
// with gapless sequential draw numbers and calendar-chained dates.
type horizonService struct {
	drawRepo interfaces.DrawRepository
}

// NewHorizonService creates a new draw horizon maintainer
func NewHorizonService(drawRepo interfaces.DrawRepository) interfaces.HorizonService {
	return &horizonService{drawRepo: drawRepo}
}

// EnsureHorizon tops the game's UPCOMING draw queue up to targetCount
func (s *horizonService) EnsureHorizon(ctx context.Context, game *entities.Game, anchor interfaces.HorizonAnchor, targetCount int) error {
	upcoming, err := s.drawRepo.GetUpcomingByGame(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to load upcoming draws: %w", err)
	}

	number, err := s.drawRepo.GetLatestDrawNumber(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to get latest draw number: %w", err)
	}
	if number == 0 {
		number = anchor.DrawNumber
	}

	// Chain new dates from the latest already-scheduled draw
	lastDate := anchor.DrawDate
	for _, draw := range upcoming {
		if draw.ScheduledAt.After(lastDate) {
			lastDate = draw.ScheduledAt
		}
	}

	count := len(upcoming)
	maxIterations := targetCount + horizonIterationSlack

	for iter := 0; count < targetCount; iter++ {
		if iter >= maxIterations {
			log.WithFields(log.Fields{
				"gameID":   game.ID,
				"gameSlug": game.Slug,
				"created":  count - len(upcoming),
				"target":   targetCount,
			}).Warn("Horizon maintenance iteration cap exceeded, aborting for this game")
			return ErrHorizonIterationCap
		}

		number++
		exists, err := s.drawRepo.ExistsDrawNumber(ctx, game.ID, number)
		if err != nil {
			return fmt.Errorf("failed to check draw number %d: %w", number, err)
		}
		if exists {
			// Defensive de-dup; consumes an iteration
			continue
		}

		lastDate = NextOccurrence(game.DrawFrequency, lastDate)
		draw := &entities.Draw{
			GameID:       game.ID,
			DrawNumber:   number,
			ScheduledAt:  lastDate,
			Status:       entities.DrawStatusUpcoming,
			JackpotCents: game.JackpotSeed(),
		}
		if err := s.drawRepo.Create(ctx, draw); err != nil {
			return fmt.Errorf("failed to create draw %d: %w", number, err)
		}
		count++
	}

	return nil
}
