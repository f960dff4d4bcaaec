package repository

import (
	"context"
	"errors"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceRepository defines the interface for stored trading days.
type PriceRepository interface {
	CreateIgnoreConflict(ctx context.Context, prices []entity.PricePoint) (int64, error)
	LatestDate(ctx context.Context, ticker string) (*time.Time, error)
	FindFirstOnOrAfter(ctx context.Context, ticker string, from, to time.Time) (*entity.PricePoint, error)
	FindLastOnOrBefore(ctx context.Context, ticker string, date, from time.Time) (*entity.PricePoint, error)
	FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.PricePoint, error)
}

// NewPriceRepository creates a new GORM-based price repository.
func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

type priceRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict appends prices; days already stored are kept as they are.
func (r *priceRepository) CreateIgnoreConflict(ctx context.Context, prices []entity.PricePoint) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoNothing: true,
	}).CreateInBatches(prices, 500)
	return tx.RowsAffected, tx.Error
}

// LatestDate returns nil when no price is stored for the ticker.
func (r *priceRepository) LatestDate(ctx context.Context, ticker string) (*time.Time, error) {
	var price entity.PricePoint
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price.Date, nil
}

// FindFirstOnOrAfter returns the earliest trading day in [from, to], or nil.
func (r *priceRepository) FindFirstOnOrAfter(ctx context.Context, ticker string, from, to time.Time) (*entity.PricePoint, error) {
	return r.first(r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ? AND date <= ?", ticker, from, to).
		Order("date ASC"))
}

// FindLastOnOrBefore returns the latest trading day in [from, date], or nil.
func (r *priceRepository) FindLastOnOrBefore(ctx context.Context, ticker string, date, from time.Time) (*entity.PricePoint, error) {
	return r.first(r.db.WithContext(ctx).
		Where("ticker = ? AND date <= ? AND date >= ?", ticker, date, from).
		Order("date DESC"))
}

func (r *priceRepository) FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.PricePoint, error) {
	var prices []entity.PricePoint
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ?", ticker, since).
		Order("date ASC").
		Find(&prices).Error
	return prices, err
}

func (r *priceRepository) first(query *gorm.DB) (*entity.PricePoint, error) {
	var price entity.PricePoint
	err := query.First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}
