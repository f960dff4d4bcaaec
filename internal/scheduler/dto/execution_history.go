package dto

import (
	"encoding/json"
	"time"
)

// ExecutionHistoryResponse is the DTO for API responses containing sync execution details.
type ExecutionHistoryResponse struct {
	ID           uint            `json:"id"`
	Ticker       string          `json:"ticker"`
	TaskType     string          `json:"task_type"`
	Status       string          `json:"status"`
	ExecutedAt   time.Time       `json:"executed_at"`
	Duration     int64           `json:"duration_ms"`
	Output       json.RawMessage `json:"output,omitempty" swaggertype:"object"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
