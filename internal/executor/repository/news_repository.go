package repository

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/entity"
)

// NewsProvider returns the articles about a ticker published on or after since.
type NewsProvider interface {
	FetchNews(ctx context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error)
}
