package repository

import (
	"context"

	"github.com/jotickets/jotickets/internal/models"
	"gorm.io/gorm"
)

type StadiumRepository interface {
	List(ctx context.Context) ([]models.Stadium, error)
}

type stadiumRepository struct {
	db *gorm.DB
}

func NewStadiumRepository(db *gorm.DB) StadiumRepository {
	return &stadiumRepository{db: db}
}

func (r *stadiumRepository) List(ctx context.Context) ([]models.Stadium, error) {
	var stadiums []models.Stadium
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&stadiums).Error; err != nil {
		return nil, err
	}
	return stadiums, nil
}
