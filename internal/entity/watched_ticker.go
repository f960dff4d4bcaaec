package entity

import (
	"database/sql"
	"time"
)

// WatchedTicker is a ticker the scheduler syncs on a cron schedule.
type WatchedTicker struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Ticker         string       `gorm:"type:varchar(20);not null;unique" json:"ticker"`
	CronExpression string       `gorm:"not null" json:"cron_expression"`
	LookbackDays   int          `gorm:"not null" json:"lookback_days"`
	Notify         bool         `gorm:"not null" json:"notify"`
	IsActive       bool         `gorm:"not null" json:"is_active"`
	LastExecution  sql.NullTime `json:"last_execution"`
	NextExecution  sql.NullTime `json:"next_execution"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the WatchedTicker model.
func (WatchedTicker) TableName() string {
	return "watched_tickers"
}
