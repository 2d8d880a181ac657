package models

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"size:3;not null" json:"code"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
