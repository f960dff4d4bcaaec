package repository

import (
	"context"
	"errors"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// SyncExecutionRepository defines the interface for sync execution history data operations.
type SyncExecutionRepository interface {
	Create(ctx context.Context, execution *entity.SyncExecution) error
	FindByID(ctx context.Context, id uint) (*entity.SyncExecution, error)
	FindAll(ctx context.Context, limit int) ([]entity.SyncExecution, error)
	FindAllByTicker(ctx context.Context, ticker string, limit int) ([]entity.SyncExecution, error)
	Update(ctx context.Context, execution *entity.SyncExecution) error
}

// NewSyncExecutionRepository creates a new GORM-based sync execution repository.
func NewSyncExecutionRepository(db *gorm.DB) SyncExecutionRepository {
	return &syncExecutionRepository{db: db}
}

type syncExecutionRepository struct {
	db *gorm.DB
}

// Create creates a new sync execution record.
func (r *syncExecutionRepository) Create(ctx context.Context, execution *entity.SyncExecution) error {
	return r.db.WithContext(ctx).Create(execution).Error
}

// FindByID retrieves a sync execution by its ID.
func (r *syncExecutionRepository) FindByID(ctx context.Context, id uint) (*entity.SyncExecution, error) {
	var execution entity.SyncExecution
	err := r.db.WithContext(ctx).First(&execution, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &execution, nil
}

// FindAll retrieves the most recent sync executions.
func (r *syncExecutionRepository) FindAll(ctx context.Context, limit int) ([]entity.SyncExecution, error) {
	var executions []entity.SyncExecution
	if err := r.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}

// FindAllByTicker retrieves the most recent sync executions of one ticker.
func (r *syncExecutionRepository) FindAllByTicker(ctx context.Context, ticker string, limit int) ([]entity.SyncExecution, error) {
	var executions []entity.SyncExecution
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("started_at desc").Limit(limit).Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}

// Update update sync execution record
func (r *syncExecutionRepository) Update(ctx context.Context, execution *entity.SyncExecution) error {
	return r.db.WithContext(ctx).Updates(execution).Error
}
