package repository

import (
	"context"
	"errors"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// WatchedTickerRepository defines the interface for watched ticker data operations.
type WatchedTickerRepository interface {
	Create(ctx context.Context, ticker *entity.WatchedTicker) error
	FindByTicker(ctx context.Context, ticker string) (*entity.WatchedTicker, error)
	FindAll(ctx context.Context) ([]entity.WatchedTicker, error)
	Update(ctx context.Context, ticker *entity.WatchedTicker) error
	DeleteByTicker(ctx context.Context, ticker string) error
	FindDue(ctx context.Context, now time.Time) ([]entity.WatchedTicker, error)
}

// NewWatchedTickerRepository creates a new GORM-based watched ticker repository.
func NewWatchedTickerRepository(db *gorm.DB) WatchedTickerRepository {
	return &watchedTickerRepository{db: db}
}

type watchedTickerRepository struct {
	db *gorm.DB
}

// Create creates a new watched ticker.
func (r *watchedTickerRepository) Create(ctx context.Context, ticker *entity.WatchedTicker) error {
	return r.db.WithContext(ctx).Create(ticker).Error
}

// FindByTicker returns ErrNotFound when the ticker is not watched.
func (r *watchedTickerRepository) FindByTicker(ctx context.Context, ticker string) (*entity.WatchedTicker, error) {
	var watched entity.WatchedTicker
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&watched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &watched, nil
}

// FindAll retrieves all watched tickers ordered by symbol.
func (r *watchedTickerRepository) FindAll(ctx context.Context) ([]entity.WatchedTicker, error) {
	var tickers []entity.WatchedTicker
	if err := r.db.WithContext(ctx).Order("ticker asc").Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// Update updates a watched ticker.
func (r *watchedTickerRepository) Update(ctx context.Context, ticker *entity.WatchedTicker) error {
	return r.db.WithContext(ctx).Save(ticker).Error
}

// DeleteByTicker removes a watched ticker and its sync history. Stored sentiment data is kept.
func (r *watchedTickerRepository) DeleteByTicker(ctx context.Context, ticker string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("ticker = ?", ticker).Delete(&entity.WatchedTicker{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("ticker = ?", ticker).Delete(&entity.SyncExecution{}).Error
	})
}

// FindDue finds all active tickers whose next sync is due.
func (r *watchedTickerRepository) FindDue(ctx context.Context, now time.Time) ([]entity.WatchedTicker, error) {
	var tickers []entity.WatchedTicker
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, now).
		Find(&tickers).Error
	if err != nil {
		return nil, err
	}
	return tickers, nil
}
