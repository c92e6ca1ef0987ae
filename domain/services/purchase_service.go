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

// ErrNoUpcomingDraw is returned when a game has no open draw to sell against
var ErrNoUpcomingDraw = errors.New("no upcoming draw for game")

// purchaseService sells tickets against a game's next upcoming draw. The
// debit, the ledger row, the PENDING ticket and the draw's sales increment
// all ride the caller's unit of work.
type purchaseService struct {
	gameRepo       interfaces.GameRepository
	drawRepo       interfaces.DrawRepository
	ticketRepo     interfaces.TicketRepository
	userRepo       interfaces.UserRepository
	walletRepo     interfaces.WalletTransactionRepository
	numbers        interfaces.NumberDrawer
	eventPublisher interfaces.EventPublisher
}

// NewPurchaseService creates a new ticket purchase service
func NewPurchaseService(
	gameRepo interfaces.GameRepository,
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	userRepo interfaces.UserRepository,
	walletRepo interfaces.WalletTransactionRepository,
	numbers interfaces.NumberDrawer,
	eventPublisher interfaces.EventPublisher,
) interfaces.PurchaseService {
	return &purchaseService{
		gameRepo:       gameRepo,
		drawRepo:       drawRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		numbers:        numbers,
		eventPublisher: eventPublisher,
	}
}

// PurchaseTicket buys one ticket with player-chosen numbers
func (s *purchaseService) PurchaseTicket(ctx context.Context, userID int64, gameSlug string, main, special []int64) (*interfaces.PurchaseResult, error) {
	game, draw, err := s.loadSaleTarget(ctx, gameSlug)
	if err != nil {
		return nil, err
	}
	if err := entities.ValidateChosenNumbers(game, main, special); err != nil {
		return nil, fmt.Errorf("invalid numbers: %w", err)
	}
	return s.sell(ctx, userID, game, draw, [][2][]int64{{main, special}})
}

// QuickPick buys tickets with randomly generated numbers
func (s *purchaseService) QuickPick(ctx context.Context, userID int64, gameSlug string, quantity int) (*interfaces.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	game, draw, err := s.loadSaleTarget(ctx, gameSlug)
	if err != nil {
		return nil, err
	}

	picks := make([][2][]int64, 0, quantity)
	for i := 0; i < quantity; i++ {
		main, err := s.numbers.Draw(game.MainPickCount, game.MainRangeMin, game.MainRangeMax)
		if err != nil {
			return nil, fmt.Errorf("failed to generate numbers: %w", err)
		}
		var special []int64
		if game.HasSpecialNumbers() {
			special, err = s.numbers.Draw(game.SpecialPickCount, game.SpecialRangeMin, game.SpecialRangeMax)
			if err != nil {
				return nil, fmt.Errorf("failed to generate special numbers: %w", err)
			}
		}
		picks = append(picks, [2][]int64{main, special})
	}
	return s.sell(ctx, userID, game, draw, picks)
}

func (s *purchaseService) loadSaleTarget(ctx context.Context, gameSlug string) (*entities.Game, *entities.Draw, error) {
	game, err := s.gameRepo.GetBySlug(ctx, gameSlug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil || !game.Active {
		return nil, nil, fmt.Errorf("game %q not available", gameSlug)
	}

	draw, err := s.drawRepo.GetNextUpcoming(ctx, game.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get upcoming draw: %w", err)
	}
	if draw == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoUpcomingDraw, gameSlug)
	}
	return game, draw, nil
}

// sell executes the sale: debit + ledger row, PENDING tickets, atomic sales
// increment on the draw.
func (s *purchaseService) sell(ctx context.Context, userID int64, game *entities.Game, draw *entities.Draw, picks [][2][]int64) (*interfaces.PurchaseResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	totalCost := game.TicketPriceCents * int64(len(picks))
	if err := user.ValidateAmount(totalCost); err != nil {
		return nil, err
	}

	gameID, drawID := game.ID, draw.ID
	txn := &entities.WalletTransaction{
		UserID:      user.ID,
		Type:        entities.TransactionTypeDebit,
		AmountCents: -totalCost,
		GameID:      &gameID,
		DrawID:      &drawID,
		Description: fmt.Sprintf("%d %s ticket(s) for draw #%d", len(picks), game.Name, draw.DrawNumber),
	}
	newBalance, err := utils.ApplyWalletChange(ctx, s.userRepo, s.walletRepo, s.eventPublisher, txn)
	if err != nil {
		return nil, err
	}

	tickets := make([]*entities.Ticket, 0, len(picks))
	for _, pick := range picks {
		tickets = append(tickets, &entities.Ticket{
			UserID:         user.ID,
			GameID:         game.ID,
			DrawID:         draw.ID,
			MainNumbers:    pick[0],
			SpecialNumbers: pick[1],
			PriceCents:     game.TicketPriceCents,
			Status:         entities.TicketStatusPending,
		})
	}
	if err := s.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		return nil, fmt.Errorf("failed to create tickets: %w", err)
	}

	if err := s.drawRepo.IncrementTotalSales(ctx, draw.ID, totalCost); err != nil {
		return nil, fmt.Errorf("failed to increment draw sales: %w", err)
	}
	draw.TotalSalesCents += totalCost

	if err := s.eventPublisher.Publish(events.TicketsPurchasedEvent{
		UserID:         user.ID,
		GameID:         game.ID,
		DrawID:         draw.ID,
		Quantity:       len(tickets),
		TotalCostCents: totalCost,
	}); err != nil {
		log.WithError(err).Error("Failed to publish tickets purchased event")
	}

	return &interfaces.PurchaseResult{
		Tickets:         tickets,
		TotalCostCents:  totalCost,
		NewBalanceCents: newBalance,
		Draw:            draw,
	}, nil
}
