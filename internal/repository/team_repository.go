package repository

import (
	"context"

	"github.com/jotickets/jotickets/internal/models"
	"gorm.io/gorm"
)

type TeamRepository interface {
	List(ctx context.Context) ([]models.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
