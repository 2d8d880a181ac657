// Package ledger owns the ticket lifecycle: purchase-time pricing,
// per-user listing and the one-way used-flag transition performed at the
// venue gate.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jotickets/jotickets/internal/models"
	"github.com/jotickets/jotickets/internal/repository"
)

// ErrInvalidCategory is returned when a purchase names a ticket tier other
// than SILVER, GOLD or PLATINUM.
var ErrInvalidCategory = errors.New("invalid ticket category")

// tariffs maps each tier to its fixed price. Applied exactly once, at
// purchase time; a stored price is never recomputed.
var tariffs = map[models.Category]decimal.Decimal{
	models.CategorySilver:   decimal.New(10000, -2),
	models.CategoryGold:     decimal.New(20000, -2),
	models.CategoryPlatinum: decimal.New(30000, -2),
}

type ValidationStatus string

const (
	StatusAccepted    ValidationStatus = "accepted"
	StatusAlreadyUsed ValidationStatus = "already_used"
)

// ValidationResult reports the outcome of a gate scan. AlreadyUsed is a
// normal outcome, not an error.
type ValidationResult struct {
	Status ValidationStatus
	Ticket *models.Ticket
}

type Service struct {
	events  repository.EventRepository
	tickets repository.TicketRepository
}

func NewService(events repository.EventRepository, tickets repository.TicketRepository) *Service {
	return &Service{events: events, tickets: tickets}
}

// Purchase creates a ticket for the user on the given event. When price is
// nil the tier tariff is applied. The returned ticket is immediately valid
// for lookup and validation; no capacity check is performed.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, eventID uint, category models.Category, price *decimal.Decimal) (*models.Ticket, error) {
	tariff, ok := tariffs[category]
	if !ok {
		return nil, ErrInvalidCategory
	}

	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		UserID:       userID,
		EventID:      eventID,
		Category:     category,
		Price:        tariff,
		PurchaseDate: time.Now().UTC(),
		IsUsed:       false,
	}
	if price != nil {
		ticket.Price = *price
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetInfo loads a ticket with its event references. Owner-or-staff
// authorization is enforced by the caller.
func (s *Service) GetInfo(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	return s.tickets.Get(ctx, ticketID)
}

// Validate marks the ticket as used. The underlying repository performs a
// single conditional update, so concurrent calls for the same ticket yield
// exactly one Accepted result.
func (s *Service) Validate(ctx context.Context, ticketID uuid.UUID) (*ValidationResult, error) {
	flipped, err := s.tickets.MarkUsed(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	status := StatusAlreadyUsed
	if flipped {
		status = StatusAccepted
	}
	return &ValidationResult{Status: status, Ticket: ticket}, nil
}

// ListForUser returns the user's tickets, newest purchase first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}
