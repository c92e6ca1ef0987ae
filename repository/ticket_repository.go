package repository

import (
	"context"
	"fmt"
	"strings"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// TicketRepository implements the TicketRepository interface
type TicketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{q: db.Pool}
}

func newTicketRepository(tx Queryable) interfaces.TicketRepository {
	return &TicketRepository{q: tx}
}

const ticketColumns = `
	id, user_id, game_id, draw_id, main_numbers, special_numbers,
	price_cents, status, payout_cents, purchased_at
`

// CreateBatch inserts tickets in a single multi-row statement and backfills
// generated IDs and purchase timestamps
func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []*entities.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO tickets (user_id, game_id, draw_id, main_numbers, special_numbers, price_cents, status)
		VALUES `)

	args := make([]any, 0, len(tickets)*7)
	for i, ticket := range tickets {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args,
			ticket.UserID,
			ticket.GameID,
			ticket.DrawID,
			ticket.MainNumbers,
			ticket.SpecialNumbers,
			ticket.PriceCents,
			ticket.Status,
		)
	}
	sb.WriteString(" RETURNING id, purchased_at")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to create tickets: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(tickets) {
			break
		}
		if err := rows.Scan(&tickets[i].ID, &tickets[i].PurchasedAt); err != nil {
			return fmt.Errorf("failed to scan created ticket: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate created tickets: %w", err)
	}
	if i != len(tickets) {
		return fmt.Errorf("expected %d created tickets, got %d", len(tickets), i)
	}

	return nil
}

// GetPendingByDraw returns all unresolved tickets for a draw, oldest first
func (r *TicketRepository) GetPendingByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE draw_id = $1 AND status = $2
		ORDER BY id
	`, ticketColumns)

	return r.queryTickets(ctx, query, drawID, entities.TicketStatusPending)
}

// GetByUserForDraw returns a user's tickets for a draw
func (r *TicketRepository) GetByUserForDraw(ctx context.Context, drawID, userID int64) ([]*entities.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE draw_id = $1 AND user_id = $2
		ORDER BY id
	`, ticketColumns)

	return r.queryTickets(ctx, query, drawID, userID)
}

// UpdateResults persists status and payout for settled tickets
func (r *TicketRepository) UpdateResults(ctx context.Context, tickets []*entities.Ticket) error {
	query := `UPDATE tickets SET status = $2, payout_cents = $3 WHERE id = $1`

	for _, ticket := range tickets {
		tag, err := r.q.Exec(ctx, query, ticket.ID, ticket.Status, ticket.PayoutCents)
		if err != nil {
			return fmt.Errorf("failed to update ticket %d: %w", ticket.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("ticket %d not found", ticket.ID)
		}
	}
	return nil
}

// CountByDraw returns the ticket count for a draw
func (r *TicketRepository) CountByDraw(ctx context.Context, drawID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE draw_id = $1`

	var count int64
	if err := r.q.QueryRow(ctx, query, drawID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tickets for draw %d: %w", drawID, err)
	}
	return count, nil
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*entities.Ticket, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		var ticket entities.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.GameID,
			&ticket.DrawID,
			&ticket.MainNumbers,
			&ticket.SpecialNumbers,
			&ticket.PriceCents,
			&ticket.Status,
			&ticket.PayoutCents,
			&ticket.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}
