package service

import "errors"

var (
	ErrInvalidTicker    = errors.New("invalid ticker symbol")
	ErrInvalidCron      = errors.New("invalid cron expression")
	ErrInvalidTaskType  = errors.New("invalid task type")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrTickerExists     = errors.New("ticker is already watched")
)
