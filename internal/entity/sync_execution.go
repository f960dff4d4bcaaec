package entity

import (
	"database/sql"
	"time"
)

// TaskType identifies which strategy handles a queued task.
type TaskType string

const (
	TaskTypeTickerSync      TaskType = "ticker_sync"
	TaskTypeHorizonBackfill TaskType = "horizon_backfill"
)

// ExecutionStatus is the lifecycle state of a SyncExecution.
type ExecutionStatus string

const (
	StatusQueued    ExecutionStatus = "QUEUED"
	StatusRunning   ExecutionStatus = "RUNNING"
	StatusCompleted ExecutionStatus = "COMPLETED"
	StatusFailed    ExecutionStatus = "FAILED"
)

// SyncExecution records one queued pipeline run for a ticker.
type SyncExecution struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Ticker       string          `gorm:"type:varchar(20);not null;index" json:"ticker"`
	TaskType     TaskType        `gorm:"type:varchar(30);not null" json:"task_type"`
	LookbackDays int             `json:"lookback_days"`
	Notify       bool            `json:"notify"`
	Status       ExecutionStatus `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  sql.NullTime    `json:"completed_at"`
	Output       sql.NullString  `json:"output"`
	ErrorMessage sql.NullString  `json:"error_message"`
}

// TableName specifies the table name for the SyncExecution model.
func (SyncExecution) TableName() string {
	return "sync_executions"
}
