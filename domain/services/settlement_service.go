package services

import (
	"context"
	"errors"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"
	"lotto/domain/utils"

	log "github.com/sirupsen/logrus"
)

// ErrDrawAlreadySettled is returned when settlement is attempted on a draw
// that is no longer UPCOMING. The status transition is the concurrency
// guard: a retry racing a completed settlement sees this and stops.
var ErrDrawAlreadySettled = errors.New("draw already settled")

// settlementService settles one due draw: draws winning numbers, classifies
// every pending ticket into a prize division, pays winners, and closes the
// draw. All writes go through the repositories bound to the caller's unit of
// work, so the settlement commits or rolls back as a whole.
type settlementService struct {
	drawRepo       interfaces.DrawRepository
	ticketRepo     interfaces.TicketRepository
	userRepo       interfaces.UserRepository
	walletRepo     interfaces.WalletTransactionRepository
	numbers        interfaces.NumberDrawer
	payout         PayoutCalculator
	eventPublisher interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	userRepo interfaces.UserRepository,
	walletRepo interfaces.WalletTransactionRepository,
	numbers interfaces.NumberDrawer,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		drawRepo:       drawRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		numbers:        numbers,
		eventPublisher: eventPublisher,
	}
}

// Settle processes one due draw through to COMPLETED
func (s *settlementService) Settle(ctx context.Context, draw *entities.Draw, game *entities.Game) (*interfaces.SettlementResult, error) {
	if draw.IsCompleted() {
		return nil, ErrDrawAlreadySettled
	}

	// Lock the draw row; the re-check under lock is the idempotency guard
	// against concurrent scheduler invocations.
	locked, err := s.drawRepo.GetByIDForUpdate(ctx, draw.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw: %w", err)
	}
	if locked == nil {
		return nil, fmt.Errorf("draw %d not found", draw.ID)
	}
	if locked.IsCompleted() {
		return nil, ErrDrawAlreadySettled
	}

	winningMain, err := s.numbers.Draw(game.MainPickCount, game.MainRangeMin, game.MainRangeMax)
	if err != nil {
		return nil, fmt.Errorf("failed to draw winning main numbers: %w", err)
	}
	var winningSpecial []int64
	if game.HasSpecialNumbers() {
		winningSpecial, err = s.numbers.Draw(game.SpecialPickCount, game.SpecialRangeMin, game.SpecialRangeMax)
		if err != nil {
			return nil, fmt.Errorf("failed to draw winning special numbers: %w", err)
		}
	}

	tickets, err := s.ticketRepo.GetPendingByDraw(ctx, locked.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending tickets: %w", err)
	}

	// Classify every ticket. An unclassified ticket loses; a game whose
	// division config failed to parse carries an empty rule list and pays
	// nobody rather than failing the settlement.
	rules := game.PrizeDivisions
	winnersByRule := make(map[int][]*entities.Ticket)
	for _, ticket := range tickets {
		mainMatches, specialMatches := ticket.MatchCounts(winningMain, winningSpecial)
		if idx := entities.MatchDivision(rules, mainMatches, specialMatches); idx >= 0 {
			winnersByRule[idx] = append(winnersByRule[idx], ticket)
		}
	}

	jackpotPool := locked.EffectiveJackpot(game.BaseJackpotCents)
	results := make([]entities.DivisionResult, 0, len(rules))
	var winnersCount, totalPayout int64

	for i := range rules {
		winners := winnersByRule[i]
		if len(winners) == 0 {
			continue
		}
		rule := rules[i]
		pool := s.payout.PoolCents(rule, jackpotPool)
		each := s.payout.EachCents(pool, len(winners))

		for _, ticket := range winners {
			if err := s.payWinner(ctx, ticket, game, locked, rule.Label, each); err != nil {
				return nil, err
			}
		}

		results = append(results, entities.DivisionResult{
			Type:         rule.Label,
			PoolCents:    pool,
			WinnersCount: int64(len(winners)),
			EachCents:    each,
		})
		winnersCount += int64(len(winners))
		totalPayout += each * int64(len(winners))
	}

	for _, ticket := range tickets {
		if !ticket.IsResolved() {
			ticket.MarkLost()
		}
	}
	if err := s.ticketRepo.UpdateResults(ctx, tickets); err != nil {
		return nil, fmt.Errorf("failed to update ticket results: %w", err)
	}

	locked.Complete(winningMain, winningSpecial, results, winnersCount, totalPayout)
	if err := s.drawRepo.CompleteSettlement(ctx, locked); err != nil {
		return nil, fmt.Errorf("failed to complete draw: %w", err)
	}

	if err := s.eventPublisher.Publish(events.DrawSettledEvent{
		GameID:           game.ID,
		DrawID:           locked.ID,
		DrawNumber:       locked.DrawNumber,
		WinningMain:      winningMain,
		WinningSpecial:   winningSpecial,
		WinnersCount:     winnersCount,
		TotalPayoutCents: totalPayout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish draw settled event")
	}

	return &interfaces.SettlementResult{
		Draw:             locked,
		WinningMain:      winningMain,
		WinningSpecial:   winningSpecial,
		DivisionResults:  results,
		WinnersCount:     winnersCount,
		TotalPayoutCents: totalPayout,
	}, nil
}

// payWinner resolves one winning ticket: WON status, credit increment paired
// with a PAYOUT ledger row, and a post-commit notification event.
func (s *settlementService) payWinner(ctx context.Context, ticket *entities.Ticket, game *entities.Game, draw *entities.Draw, division string, amountCents int64) error {
	ticket.MarkWon(amountCents)

	user, err := s.userRepo.GetByID(ctx, ticket.UserID)
	if err != nil {
		return fmt.Errorf("failed to get winner user %d: %w", ticket.UserID, err)
	}
	if user == nil {
		return fmt.Errorf("winning ticket %d references missing user %d", ticket.ID, ticket.UserID)
	}

	gameID, drawID := game.ID, draw.ID
	txn := &entities.WalletTransaction{
		UserID:      user.ID,
		Type:        entities.TransactionTypePayout,
		AmountCents: amountCents,
		GameID:      &gameID,
		DrawID:      &drawID,
		Description: fmt.Sprintf("%s draw #%d %s prize", game.Name, draw.DrawNumber, division),
	}
	if _, err := utils.ApplyWalletChange(ctx, s.userRepo, s.walletRepo, s.eventPublisher, txn); err != nil {
		return fmt.Errorf("failed to pay winner %d: %w", user.ID, err)
	}

	// Winner notification rides the transactional publisher: it reaches the
	// message bus only after the settlement commits, and a delivery failure
	// never touches ticket or draw state.
	if err := s.eventPublisher.Publish(events.PayoutAwardedEvent{
		UserID:      user.ID,
		Email:       user.Email,
		GameName:    game.Name,
		DrawID:      draw.ID,
		Division:    division,
		AmountCents: amountCents,
	}); err != nil {
		log.WithError(err).WithField("userID", user.ID).Error("Failed to publish payout awarded event")
	}

	return nil
}
