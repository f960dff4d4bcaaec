package dto

import (
	"database/sql"
	"time"
)

// CreateTickerRequest is the DTO for adding a ticker to the watch list.
type CreateTickerRequest struct {
	Ticker         string `json:"ticker"`
	CronExpression string `json:"cron_expression"`
	LookbackDays   int    `json:"lookback_days"`
	Notify         bool   `json:"notify"`
	IsActive       *bool  `json:"is_active"`
}

// TickerResponse is the DTO for API responses containing a watched ticker.
type TickerResponse struct {
	ID             uint         `json:"id"`
	Ticker         string       `json:"ticker"`
	CronExpression string       `json:"cron_expression"`
	LookbackDays   int          `json:"lookback_days"`
	Notify         bool         `json:"notify"`
	IsActive       bool         `json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution" swaggertype:"string" format:"date-time"`
	LastExecution  sql.NullTime `json:"last_execution" swaggertype:"string" format:"date-time"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TriggerSyncRequest is the optional body of a manual sync. Empty fields fall back to the ticker's settings.
type TriggerSyncRequest struct {
	TaskType     string `json:"task_type" example:"ticker_sync"`
	LookbackDays int    `json:"lookback_days"`
	Notify       *bool  `json:"notify"`
}
