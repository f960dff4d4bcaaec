package repository

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// SentimentRepository is the read side of the sentiment tables for the HTTP API.
type SentimentRepository interface {
	FindWordCounts(ctx context.Context, ticker string, from, to time.Time) ([]entity.WordCountRecord, error)
	FindCombined(ctx context.Context, ticker string, from, to time.Time) ([]entity.CombinedDailySentiment, error)
}

// NewSentimentRepository creates a new GORM-based sentiment read repository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

type sentimentRepository struct {
	db *gorm.DB
}

func (r *sentimentRepository) FindWordCounts(ctx context.Context, ticker string, from, to time.Time) ([]entity.WordCountRecord, error) {
	var records []entity.WordCountRecord
	err := r.db.WithContext(ctx).
		Omit("body_text", "classifier_response").
		Where("ticker = ? AND date BETWEEN ? AND ?", ticker, from, to).
		Order("date desc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sentimentRepository) FindCombined(ctx context.Context, ticker string, from, to time.Time) ([]entity.CombinedDailySentiment, error) {
	var rows []entity.CombinedDailySentiment
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date BETWEEN ? AND ?", ticker, from, to).
		Order("date desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
