package dto

import "time"

// WordCountResponse is one scored article of a ticker.
type WordCountResponse struct {
	Date                time.Time `json:"date"`
	ContentHash         string    `json:"content_hash"`
	SentimentLabel      string    `json:"sentiment_label"`
	SentimentConfidence float64   `json:"sentiment_confidence"`
	PositiveWordCount   int       `json:"positive_word_count"`
	NegativeWordCount   int       `json:"negative_word_count"`
	NextDayChange       *float64  `json:"next_day_change"`
	TwoWeekChange       *float64  `json:"two_week_change"`
	OneMonthChange      *float64  `json:"one_month_change"`
}

// DailySentimentResponse is the combined sentiment of a ticker for one date.
type DailySentimentResponse struct {
	Date                time.Time `json:"date"`
	AggregateLabel      string    `json:"aggregate_label"`
	AggregateConfidence float64   `json:"aggregate_confidence"`
	ArticleCount        int       `json:"article_count"`
	PositiveWordTotal   int       `json:"positive_word_total"`
	NegativeWordTotal   int       `json:"negative_word_total"`
	NextDayChange       *float64  `json:"next_day_change"`
	TwoWeekChange       *float64  `json:"two_week_change"`
	OneMonthChange      *float64  `json:"one_month_change"`
	LastUpdated         time.Time `json:"last_updated"`
}

// SentimentQuery is the date range of a read request. Dates are inclusive, YYYY-MM-DD.
type SentimentQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}
