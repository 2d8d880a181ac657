package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jotickets/jotickets/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	// Get loads the ticket with its event, stadium and teams.
	Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
	// ListByUser returns the user's tickets, newest purchase first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error)
	// MarkUsed flips is_used from false to true in a single conditional
	// update. It reports true when this call performed the flip, false when
	// the ticket was already used, and ErrNotFound when the ticket does not
	// exist. Two concurrent calls for the same ticket can never both
	// report true.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Event").Preload("Event.Stadium").
		Preload("Event.TeamHome").Preload("Event.TeamAway").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Event").Preload("Event.Stadium").
		Preload("Event.TeamHome").Preload("Event.TeamAway").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	// Nothing flipped: the ticket is either already used or missing.
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNotFound
	}
	return false, nil
}
