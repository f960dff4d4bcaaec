package entity

import "time"

// AggregateLabel is the per-date sentiment of a ticker.
type AggregateLabel string

const (
	AggregatePositive   AggregateLabel = "POS"
	AggregateNeutral    AggregateLabel = "NEUT"
	AggregateNegative   AggregateLabel = "NEG"
	AggregateNoNewsData AggregateLabel = "NoNewsData"
)

// CombinedDailySentiment merges every WordCountRecord of a (ticker, date).
type CombinedDailySentiment struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Ticker              string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_combined_ticker_date" json:"ticker"`
	Date                time.Time      `gorm:"type:date;not null;uniqueIndex:idx_combined_ticker_date" json:"date"`
	AggregateLabel      AggregateLabel `gorm:"type:varchar(20);not null" json:"aggregate_label"`
	AggregateConfidence float64        `json:"aggregate_confidence"`
	PositiveWordTotal   int            `json:"positive_word_total"`
	NegativeWordTotal   int            `json:"negative_word_total"`
	ArticleCount        int            `json:"article_count"`
	NextDayChange       *float64       `json:"next_day_change"`
	TwoWeekChange       *float64       `json:"two_week_change"`
	OneMonthChange      *float64       `json:"one_month_change"`
	LastUpdated         time.Time      `gorm:"type:date;not null" json:"last_updated"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the CombinedDailySentiment model.
func (CombinedDailySentiment) TableName() string {
	return "combined_daily_sentiments"
}
