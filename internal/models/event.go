package models

import "time"

type Event struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Start      time.Time `gorm:"not null;index" json:"start"`
	StadiumID  uint      `gorm:"not null;index" json:"stadium_id"`
	Stadium    Stadium   `gorm:"constraint:OnDelete:CASCADE" json:"stadium"`
	TeamHomeID uint      `gorm:"not null;index" json:"team_home_id"`
	TeamHome   Team      `gorm:"foreignKey:TeamHomeID;constraint:OnDelete:CASCADE" json:"team_home"`
	TeamAwayID uint      `gorm:"not null;index" json:"team_away_id"`
	TeamAway   Team      `gorm:"foreignKey:TeamAwayID;constraint:OnDelete:CASCADE" json:"team_away"`
	ScoreHome  int       `gorm:"not null;default:0" json:"score_home"`
	ScoreAway  int       `gorm:"not null;default:0" json:"score_away"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
