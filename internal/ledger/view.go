package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/jotickets/jotickets/internal/models"
)

// TicketView is the read-only projection returned to clients. Prices are
// rendered with two decimal places.
type TicketView struct {
	ID           uuid.UUID       `json:"id"`
	Event        models.Event    `json:"event"`
	Category     models.Category `json:"category"`
	Price        string          `json:"price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	IsUsed       bool            `json:"is_used"`
}

func NewTicketView(ticket *models.Ticket) TicketView {
	return TicketView{
		ID:           ticket.ID,
		Event:        ticket.Event,
		Category:     ticket.Category,
		Price:        ticket.Price.StringFixed(2),
		PurchaseDate: ticket.PurchaseDate,
		IsUsed:       ticket.IsUsed,
	}
}

func NewTicketViews(tickets []models.Ticket) []TicketView {
	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		views = append(views, NewTicketView(&tickets[i]))
	}
	return views
}
