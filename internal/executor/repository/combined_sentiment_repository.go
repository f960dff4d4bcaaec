package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CombinedSentimentRepository defines the interface for per-date aggregate records.
type CombinedSentimentRepository interface {
	Upsert(ctx context.Context, combined *entity.CombinedDailySentiment) error
	FindByTicker(ctx context.Context, ticker string) ([]entity.CombinedDailySentiment, error)
	FindByTickerAndDate(ctx context.Context, ticker string, date time.Time) (*entity.CombinedDailySentiment, error)
	FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.CombinedDailySentiment, error)
	UpdateChange(ctx context.Context, ticker string, date time.Time, column string, value float64) (int64, error)
}

// NewCombinedSentimentRepository creates a new GORM-based combined sentiment repository.
func NewCombinedSentimentRepository(db *gorm.DB) CombinedSentimentRepository {
	return &combinedSentimentRepository{db: db}
}

type combinedSentimentRepository struct {
	db *gorm.DB
}

// Upsert writes exactly one row per (ticker, date), overwriting a previous computation.
func (r *combinedSentimentRepository) Upsert(ctx context.Context, combined *entity.CombinedDailySentiment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"aggregate_label",
			"aggregate_confidence",
			"positive_word_total",
			"negative_word_total",
			"article_count",
			ColumnNextDayChange,
			ColumnTwoWeekChange,
			ColumnOneMonthChange,
			"last_updated",
			"updated_at",
		}),
	}).Create(combined).Error
}

func (r *combinedSentimentRepository) FindByTicker(ctx context.Context, ticker string) ([]entity.CombinedDailySentiment, error) {
	var rows []entity.CombinedDailySentiment
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *combinedSentimentRepository) FindByTickerAndDate(ctx context.Context, ticker string, date time.Time) (*entity.CombinedDailySentiment, error) {
	var row entity.CombinedDailySentiment
	err := r.db.WithContext(ctx).Where("ticker = ? AND date = ?", ticker, date).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *combinedSentimentRepository) FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.CombinedDailySentiment, error) {
	var rows []entity.CombinedDailySentiment
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ?", ticker, since).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateChange fills a horizon column of the (ticker, date) row if it is still NULL.
func (r *combinedSentimentRepository) UpdateChange(ctx context.Context, ticker string, date time.Time, column string, value float64) (int64, error) {
	if !isChangeColumn(column) {
		return 0, fmt.Errorf("unknown change column %q", column)
	}
	tx := r.db.WithContext(ctx).
		Model(&entity.CombinedDailySentiment{}).
		Where("ticker = ? AND date = ?", ticker, date).
		Where(column+" IS NULL").
		Update(column, value)
	return tx.RowsAffected, tx.Error
}
