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

// Change columns shared by word_counts and combined_daily_sentiments.
const (
	ColumnNextDayChange  = "next_day_change"
	ColumnTwoWeekChange  = "two_week_change"
	ColumnOneMonthChange = "one_month_change"
)

// WordCountRepository defines the interface for per-article sentiment records.
type WordCountRepository interface {
	FindByHash(ctx context.Context, ticker, hash string) (*entity.WordCountRecord, error)
	Upsert(ctx context.Context, record *entity.WordCountRecord) error
	FindByTicker(ctx context.Context, ticker string) ([]entity.WordCountRecord, error)
	FindUnresolved(ctx context.Context, ticker string) ([]entity.WordCountRecord, error)
	UpdateChange(ctx context.Context, ticker string, date time.Time, column string, value float64) (int64, error)
	CountByTicker(ctx context.Context, ticker string) (int64, error)
}

// NewWordCountRepository creates a new GORM-based word count repository.
func NewWordCountRepository(db *gorm.DB) WordCountRepository {
	return &wordCountRepository{db: db}
}

type wordCountRepository struct {
	db *gorm.DB
}

// FindByHash returns nil without error when no record exists for (ticker, hash).
func (r *wordCountRepository) FindByHash(ctx context.Context, ticker, hash string) (*entity.WordCountRecord, error) {
	var record entity.WordCountRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND content_hash = ?", ticker, hash).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert inserts the record or, when (ticker, content_hash) exists with label Fail, replaces its outcome.
// Scored rows are left untouched.
func (r *wordCountRepository) Upsert(ctx context.Context, record *entity.WordCountRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}, {Name: "content_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"date",
			"sentiment_label",
			"sentiment_confidence",
			"positive_word_count",
			"negative_word_count",
			ColumnNextDayChange,
			ColumnTwoWeekChange,
			ColumnOneMonthChange,
			"body_text",
			"classifier_response",
			"updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "word_counts.sentiment_label = ?", Vars: []interface{}{entity.SentimentFail}},
		}},
	}).Create(record).Error
}

func (r *wordCountRepository) FindByTicker(ctx context.Context, ticker string) ([]entity.WordCountRecord, error) {
	var records []entity.WordCountRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date ASC, id ASC").
		Find(&records).Error
	return records, err
}

// FindUnresolved returns scored records with at least one horizon still NULL.
func (r *wordCountRepository) FindUnresolved(ctx context.Context, ticker string) ([]entity.WordCountRecord, error) {
	var records []entity.WordCountRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Where("sentiment_label IN ?", []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentNeutral, entity.SentimentNegative}).
		Where("next_day_change IS NULL OR two_week_change IS NULL OR one_month_change IS NULL").
		Order("date ASC, id ASC").
		Find(&records).Error
	return records, err
}

// UpdateChange writes a resolved horizon onto every record of (ticker, date) whose column is still NULL.
func (r *wordCountRepository) UpdateChange(ctx context.Context, ticker string, date time.Time, column string, value float64) (int64, error) {
	if !isChangeColumn(column) {
		return 0, fmt.Errorf("unknown change column %q", column)
	}
	tx := r.db.WithContext(ctx).
		Model(&entity.WordCountRecord{}).
		Where("ticker = ? AND date = ?", ticker, date).
		Where(column+" IS NULL").
		Update(column, value)
	return tx.RowsAffected, tx.Error
}

func (r *wordCountRepository) CountByTicker(ctx context.Context, ticker string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.WordCountRecord{}).Where("ticker = ?", ticker).Count(&count).Error
	return count, err
}

func isChangeColumn(column string) bool {
	switch column {
	case ColumnNextDayChange, ColumnTwoWeekChange, ColumnOneMonthChange:
		return true
	}
	return false
}
