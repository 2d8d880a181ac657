package handlers

import (
	"crypto/hmac"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jotickets/jotickets/internal/helpers"
	"github.com/jotickets/jotickets/internal/ledger"
	"github.com/jotickets/jotickets/internal/middleware"
	"github.com/jotickets/jotickets/internal/models"
)

const maxTicketsPerPurchase = 10

type BuyTicketRequest struct {
	EventID  uint    `json:"event_id" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Quantity int     `json:"quantity"`
	Price    *string `json:"price"`
}

type TicketHandler struct {
	ledger    *ledger.Service
	deviceKey string
}

func NewTicketHandler(ledgerService *ledger.Service, deviceKey string) *TicketHandler {
	return &TicketHandler{ledger: ledgerService, deviceKey: deviceKey}
}

func (h *TicketHandler) BuyTicket(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	category, ok := models.ParseCategory(req.Category)
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket category.")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 || quantity > maxTicketsPerPurchase {
		helpers.RespondWithError(c, http.StatusBadRequest, "Quantity must be between 1 and 10.")
		return
	}

	var price *decimal.Decimal
	if req.Price != nil {
		parsed, err := decimal.NewFromString(*req.Price)
		if err != nil || parsed.IsNegative() {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid price.")
			return
		}
		price = &parsed
	}

	views := make([]ledger.TicketView, 0, quantity)
	for i := 0; i < quantity; i++ {
		ticket, err := h.ledger.Purchase(c.Request.Context(), userID, req.EventID, category, price)
		if err != nil {
			helpers.RespondWithRepoError(c, err, "Event not found.")
			return
		}
		views = append(views, ledger.NewTicketView(ticket))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket purchased successfully.",
		"tickets": views,
	})
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	tickets, err := h.ledger.ListForUser(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": ledger.NewTicketViews(tickets)})
}

func (h *TicketHandler) GetInfo(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	ticketID, err := uuid.Parse(c.Param("ticket_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return
	}

	ticket, err := h.ledger.GetInfo(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithRepoError(c, err, "Ticket not found.")
		return
	}

	// Only the owner or staff may see a ticket.
	if ticket.UserID != userID && !middleware.IsStaff(c) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ledger.NewTicketView(ticket)})
}

func (h *TicketHandler) ValidateTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticket_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return
	}

	result, err := h.ledger.Validate(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithRepoError(c, err, "Ticket not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": result.Status,
		"ticket": ledger.NewTicketView(result.Ticket),
	})
}

// VerifyTicket is the scanner variant of validate. Gate devices hold a
// shared key and send it in X-Device-Key; staff sessions work too.
func (h *TicketHandler) VerifyTicket(c *gin.Context) {
	if !h.deviceAuthorized(c) && !middleware.IsStaff(c) {
		if _, authenticated := middleware.CallerID(c); authenticated {
			helpers.RespondWithError(c, http.StatusForbidden, "Staff or device access required.")
		} else {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		}
		return
	}

	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return
	}

	result, err := h.ledger.Validate(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithRepoError(c, err, "Ticket not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  result.Status == ledger.StatusAccepted,
		"status": result.Status,
		"ticket": ledger.NewTicketView(result.Ticket),
	})
}

func (h *TicketHandler) deviceAuthorized(c *gin.Context) bool {
	if h.deviceKey == "" {
		return false
	}
	key := c.GetHeader("X-Device-Key")
	return hmac.Equal([]byte(key), []byte(h.deviceKey))
}
