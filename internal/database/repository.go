package database

import (
	"context"

	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) GetByID(ctx context.Context, id uint) (*Run, error) {
	var run Run
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// List возвращает прогоны от новых к старым.
func (r *RunRepository) List(ctx context.Context, limit, offset int) ([]Run, error) {
	var runs []Run
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// ListFailed: только упавшие прогоны, для разбора скриншотов.
func (r *RunRepository) ListFailed(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusFailed).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
