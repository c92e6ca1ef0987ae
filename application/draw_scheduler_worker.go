package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/services"

	log "github.com/sirupsen/logrus"
)

// DrawSchedulerWorker periodically settles due draws and tops up the queue
// of scheduled draws for every active game. Each settlement runs in its own
// unit of work, so one failing game never blocks the others.
type DrawSchedulerWorker struct {
	uowFactory   UnitOfWorkFactory
	numbers      interfaces.NumberDrawer
	tickInterval time.Duration
	drawHorizon  int
}

// NewDrawSchedulerWorker creates a new draw scheduler worker
func NewDrawSchedulerWorker(uowFactory UnitOfWorkFactory, numbers interfaces.NumberDrawer, tickInterval time.Duration, drawHorizon int) *DrawSchedulerWorker {
	return &DrawSchedulerWorker{
		uowFactory:   uowFactory,
		numbers:      numbers,
		tickInterval: tickInterval,
		drawHorizon:  drawHorizon,
	}
}

// Start begins the scheduler loop and returns a stop function
func (w *DrawSchedulerWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.WithFields(log.Fields{
			"tickInterval": w.tickInterval,
			"drawHorizon":  w.drawHorizon,
		}).Info("Draw scheduler worker started")

		// Run one pass immediately so overdue draws from downtime settle
		// without waiting a full tick
		if err := w.RunPass(ctx); err != nil {
			log.WithError(err).Error("Draw scheduler pass failed")
		}

		for {
			select {
			case <-ctx.Done():
				log.Info("Draw scheduler worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Draw scheduler worker shutting down (stop requested)...")
				return
			case <-time.After(w.tickInterval):
				if err := w.RunPass(ctx); err != nil {
					log.WithError(err).Error("Draw scheduler pass failed")
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// RunPass executes one scheduler pass over all active games
func (w *DrawSchedulerWorker) RunPass(ctx context.Context) error {
	games, err := w.listActiveGames(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		log.Debug("No active games to process")
		return nil
	}

	var failureCount int
	for _, game := range games {
		if err := w.processGame(ctx, game); err != nil {
			log.WithFields(log.Fields{
				"gameID":   game.ID,
				"gameSlug": game.Slug,
			}).WithError(err).Error("Error processing game")
			failureCount++
		}
	}

	if failureCount > 0 {
		return fmt.Errorf("%d of %d games failed this pass", failureCount, len(games))
	}
	return nil
}

// listActiveGames loads the active game catalogue in a read-only transaction
func (w *DrawSchedulerWorker) listActiveGames(ctx context.Context) ([]*entities.Game, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}
	return games, nil
}

// processGame settles every due draw for the game and then tops up its
// horizon of scheduled draws
func (w *DrawSchedulerWorker) processGame(ctx context.Context, game *entities.Game) error {
	if err := game.ValidateRanges(); err != nil {
		log.WithField("gameSlug", game.Slug).WithError(err).Warn("Game has invalid number ranges, skipping")
		return nil
	}
	if err := entities.ValidateDivisions(game.PrizeDivisions); err != nil {
		// Overlapping rules still settle first-match-wins; flag the config
		log.WithField("gameSlug", game.Slug).WithError(err).Warn("Game has overlapping prize divisions")
	}

	dueDraws, err := w.loadDueDraws(ctx, game)
	if err != nil {
		return err
	}

	for _, draw := range dueDraws {
		if err := w.settleDraw(ctx, game, draw); err != nil {
			if errors.Is(err, services.ErrDrawAlreadySettled) {
				log.WithFields(log.Fields{
					"gameSlug": game.Slug,
					"drawID":   draw.ID,
				}).Info("Draw already settled, skipping")
				continue
			}
			return fmt.Errorf("failed to settle draw %d: %w", draw.ID, err)
		}
	}

	return w.maintainHorizon(ctx, game)
}

// loadDueDraws returns the game's UPCOMING draws whose scheduled time has passed
func (w *DrawSchedulerWorker) loadDueDraws(ctx context.Context, game *entities.Game) ([]*entities.Draw, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	draws, err := uow.DrawRepository().GetDueDraws(ctx, game.ID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load due draws: %w", err)
	}
	return draws, nil
}

// settleDraw runs one settlement and the jackpot rollover in a single
// transaction: the draw closes, winners get paid, and the jackpot moves as
// one atomic unit
func (w *DrawSchedulerWorker) settleDraw(ctx context.Context, game *entities.Game, draw *entities.Draw) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settlement := services.NewSettlementService(
		uow.DrawRepository(),
		uow.TicketRepository(),
		uow.UserRepository(),
		uow.WalletTransactionRepository(),
		w.numbers,
		uow.EventBus(),
	)

	result, err := settlement.Settle(ctx, draw, game)
	if err != nil {
		return err
	}

	rollover := services.NewJackpotPolicy(
		uow.GameRepository(),
		uow.DrawRepository(),
		uow.EventBus(),
	)
	nextJackpot, err := rollover.ApplyRollover(ctx, game, result.Draw, result.DivisionResults)
	if err != nil {
		return fmt.Errorf("failed to apply jackpot rollover: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	log.WithFields(log.Fields{
		"gameSlug":    game.Slug,
		"drawID":      result.Draw.ID,
		"drawNumber":  result.Draw.DrawNumber,
		"winners":     result.WinnersCount,
		"totalPayout": result.TotalPayoutCents,
		"nextJackpot": nextJackpot,
	}).Info("Settled draw")

	return nil
}

// maintainHorizon tops the game's queue of scheduled draws back up to the
// configured horizon in its own transaction
func (w *DrawSchedulerWorker) maintainHorizon(ctx context.Context, game *entities.Game) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	horizon := services.NewHorizonService(uow.DrawRepository())
	anchor := interfaces.HorizonAnchor{
		DrawNumber: 0,
		DrawDate:   time.Now().UTC(),
	}
	if err := horizon.EnsureHorizon(ctx, game, anchor, w.drawHorizon); err != nil {
		if errors.Is(err, services.ErrHorizonIterationCap) {
			// Logged inside the service; settlement stays healthy so the
			// scheduler keeps going
			return uow.Commit()
		}
		return fmt.Errorf("failed to maintain draw horizon: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit horizon maintenance: %w", err)
	}
	return nil
}
