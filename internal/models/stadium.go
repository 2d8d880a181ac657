package models

import "time"

type Stadium struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `gorm:"not null" json:"location"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
