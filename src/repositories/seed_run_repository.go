package repositories

import (
	"context"

	"salesboard/src/models"

	"gorm.io/gorm"
)

type SeedRunRepository interface {
	Create(ctx context.Context, run *models.SeedRun) error
	ListRecent(ctx context.Context, limit int) ([]models.SeedRun, error)
}

type seedRunRepo struct {
	db *gorm.DB
}

func NewSeedRunRepository(db *gorm.DB) SeedRunRepository {
	return &seedRunRepo{db: db}
}

func (r *seedRunRepo) Create(ctx context.Context, run *models.SeedRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// ListRecent returns the newest runs first.
func (r *seedRunRepo) ListRecent(ctx context.Context, limit int) ([]models.SeedRun, error) {
	var runs []models.SeedRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
