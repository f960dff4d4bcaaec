package repository

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsArticleRepository defines the interface for fetched news articles.
type NewsArticleRepository interface {
	CreateIgnoreConflict(ctx context.Context, articles []entity.NewsArticle) (int64, error)
	FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error)
}

// NewNewsArticleRepository creates a new GORM-based news article repository.
func NewNewsArticleRepository(db *gorm.DB) NewsArticleRepository {
	return &newsArticleRepository{db: db}
}

type newsArticleRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict stores new articles; an article already stored for (ticker, source_url) is immutable.
func (r *newsArticleRepository) CreateIgnoreConflict(ctx context.Context, articles []entity.NewsArticle) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "source_url"}},
		DoNothing: true,
	}).CreateInBatches(articles, 100)
	return tx.RowsAffected, tx.Error
}

func (r *newsArticleRepository) FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error) {
	var articles []entity.NewsArticle
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND published_date >= ?", ticker, since).
		Order("published_date ASC, id ASC").
		Find(&articles).Error
	return articles, err
}
