package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SentimentLabel is the per-article classification outcome.
type SentimentLabel string

const (
	SentimentPositive   SentimentLabel = "Positive"
	SentimentNeutral    SentimentLabel = "Neutral"
	SentimentNegative   SentimentLabel = "Negative"
	SentimentFail       SentimentLabel = "Fail"
	SentimentNoNewsData SentimentLabel = "NoNewsData"
)

// IsScored reports whether the label is a resolved classifier vote.
func (l SentimentLabel) IsScored() bool {
	return l == SentimentPositive || l == SentimentNeutral || l == SentimentNegative
}

// WordCountRecord is the scored form of one article, unique per (ticker, content hash).
type WordCountRecord struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Ticker              string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_word_counts_ticker_hash" json:"ticker"`
	Date                time.Time      `gorm:"type:date;not null;index" json:"date"`
	ContentHash         string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_word_counts_ticker_hash" json:"content_hash"`
	SentimentLabel      SentimentLabel `gorm:"type:varchar(20);not null" json:"sentiment_label"`
	SentimentConfidence float64        `json:"sentiment_confidence"`
	PositiveWordCount   int            `json:"positive_word_count"`
	NegativeWordCount   int            `json:"negative_word_count"`
	NextDayChange       *float64       `json:"next_day_change"`
	TwoWeekChange       *float64       `json:"two_week_change"`
	OneMonthChange      *float64       `json:"one_month_change"`
	BodyText            string         `gorm:"type:text" json:"body_text"`
	ClassifierResponse  datatypes.JSON `gorm:"type:jsonb" json:"classifier_response,omitempty"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the WordCountRecord model.
func (WordCountRecord) TableName() string {
	return "word_counts"
}

// HasUnresolvedHorizon reports whether any price-change field is still waiting for market data.
func (r WordCountRecord) HasUnresolvedHorizon() bool {
	return r.NextDayChange == nil || r.TwoWeekChange == nil || r.OneMonthChange == nil
}
