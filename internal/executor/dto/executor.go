package dto

import (
	"time"

	"golang-stock-sentiment/internal/entity"
)

// SyncTask is the payload carried in the Redis stream from the scheduler to the sentiment service.
type SyncTask struct {
	ExecutionID  uint            `json:"execution_id"`
	Ticker       string          `json:"ticker"`
	TaskType     entity.TaskType `json:"task_type"`
	LookbackDays int             `json:"lookback_days"`
	Notify       bool            `json:"notify"`
}

// SyncResult summarises one pipeline run for a ticker.
type SyncResult struct {
	Ticker           string   `json:"ticker"`
	PricesStored     int      `json:"prices_stored"`
	ArticlesStored   int      `json:"articles_stored"`
	Scored           int      `json:"scored"`
	Failed           int      `json:"failed"`
	Deferred         int      `json:"deferred"`
	CombinedDates    int      `json:"combined_dates"`
	ResolvedHorizons int      `json:"resolved_horizons"`
	Errors           []string `json:"errors,omitempty"`
}

// BatchResult is the outcome of one scoring batch.
type BatchResult struct {
	Records  []entity.WordCountRecord
	Scored   int
	Failed   int
	Skipped  int
	Deferred int
}

// DailySentimentDigest is one line of the Telegram digest.
type DailySentimentDigest struct {
	Date           time.Time
	Label          entity.AggregateLabel
	Confidence     float64
	ArticleCount   int
	PositiveWords  int
	NegativeWords  int
	NextDayChange  *float64
	TwoWeekChange  *float64
	OneMonthChange *float64
}
