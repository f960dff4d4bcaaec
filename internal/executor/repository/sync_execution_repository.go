package repository

import (
	"context"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// SyncExecutionRepository defines the interface for sync execution history data operations.
type SyncExecutionRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.SyncExecution, error)
	Update(ctx context.Context, execution *entity.SyncExecution) error
}

// NewSyncExecutionRepository creates a new GORM-based sync execution repository.
func NewSyncExecutionRepository(db *gorm.DB) SyncExecutionRepository {
	return &syncExecutionRepository{db: db}
}

type syncExecutionRepository struct {
	db *gorm.DB
}

// FindByID retrieves a sync execution by its ID.
func (r *syncExecutionRepository) FindByID(ctx context.Context, id uint) (*entity.SyncExecution, error) {
	var execution entity.SyncExecution
	if err := r.db.WithContext(ctx).First(&execution, id).Error; err != nil {
		return nil, err
	}
	return &execution, nil
}

// Update updates an existing sync execution record.
func (r *syncExecutionRepository) Update(ctx context.Context, execution *entity.SyncExecution) error {
	return r.db.WithContext(ctx).Save(execution).Error
}
