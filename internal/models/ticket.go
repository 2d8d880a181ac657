package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Ticket struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EventID      uint            `gorm:"not null;index" json:"event_id"`
	Event        Event           `gorm:"constraint:OnDelete:CASCADE" json:"event"`
	Category     Category        `gorm:"type:varchar(10);not null" json:"category"`
	Price        decimal.Decimal `gorm:"type:numeric(6,2);not null" json:"price"`
	PurchaseDate time.Time       `gorm:"not null" json:"purchase_date"`
	IsUsed       bool            `gorm:"not null;default:false" json:"is_used"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
