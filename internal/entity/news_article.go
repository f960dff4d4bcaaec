package entity

import (
	"time"

	"github.com/lib/pq"
)

// NewsArticle is a news story about a ticker as delivered by the news provider.
type NewsArticle struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Ticker        string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_news_articles_ticker_url" json:"ticker"`
	PublishedDate time.Time      `gorm:"type:date;not null" json:"published_date"`
	SourceURL     string         `gorm:"not null;uniqueIndex:idx_news_articles_ticker_url" json:"source_url"`
	Title         string         `json:"title"`
	BodyText      string         `gorm:"type:text" json:"body_text"`
	Source        string         `json:"source"`
	Tickers       pq.StringArray `gorm:"type:text[]" json:"tickers"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsArticle model.
func (NewsArticle) TableName() string {
	return "news_articles"
}
