package testutil

import (
	"time"

	"lotto/domain/entities"
)

// CreateTestGame creates a test game configured like a classic 6/45 lotto
func CreateTestGame(slug, name string) *entities.Game {
	two := 2
	return &entities.Game{
		Slug:             slug,
		Name:             name,
		TicketPriceCents: 150,
		MainPickCount:    6,
		MainRangeMin:     1,
		MainRangeMax:     45,
		DrawFrequency:    "saturday at 20",
		BaseJackpotCents: 100_000_00,
		Active:           true,
		PrizeDivisions: []entities.PrizeDivisionRule{
			{Label: "Jackpot", MatchMain: 6, Kind: entities.PayoutPercentage, PercentMillionths: 700_000},
			{Label: "Division 2", MatchMain: 5, MatchSpecial: &two, Kind: entities.PayoutPercentage, PercentMillionths: 100_000},
			{Label: "Division 3", MatchMain: 5, Kind: entities.PayoutFixed, FixedCents: 5000},
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestGameWithSpecial creates a test game with a special ball pool
func CreateTestGameWithSpecial(slug, name string) *entities.Game {
	game := CreateTestGame(slug, name)
	game.SpecialPickCount = 1
	game.SpecialRangeMin = 1
	game.SpecialRangeMax = 20
	one := 1
	game.PrizeDivisions = []entities.PrizeDivisionRule{
		{Label: "Jackpot", MatchMain: 6, MatchSpecial: &one, Kind: entities.PayoutPercentage, PercentMillionths: 700_000},
		{Label: "Division 2", MatchMain: 6, Kind: entities.PayoutPercentage, PercentMillionths: 150_000},
		{Label: "Division 3", MatchMain: 5, Kind: entities.PayoutFixed, FixedCents: 10000},
	}
	return game
}

// CreateTestDraw creates an UPCOMING test draw
func CreateTestDraw(gameID, drawNumber int64, scheduledAt time.Time) *entities.Draw {
	return &entities.Draw{
		GameID:       gameID,
		DrawNumber:   drawNumber,
		ScheduledAt:  scheduledAt,
		Status:       entities.DrawStatusUpcoming,
		JackpotCents: 100_000_00,
	}
}

// CreateTestTicket creates a PENDING test ticket
func CreateTestTicket(userID, gameID, drawID int64, main []int64) *entities.Ticket {
	return &entities.Ticket{
		UserID:      userID,
		GameID:      gameID,
		DrawID:      drawID,
		MainNumbers: main,
		PriceCents:  150,
		Status:      entities.TicketStatusPending,
	}
}

// CreateTestWalletTransaction creates a test ledger entry
func CreateTestWalletTransaction(userID int64, txType entities.TransactionType, amountCents int64) *entities.WalletTransaction {
	return &entities.WalletTransaction{
		UserID:      userID,
		Type:        txType,
		AmountCents: amountCents,
		Description: "test transaction",
	}
}
