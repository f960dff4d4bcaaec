package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"
)

// TickerSyncStrategy runs the full fetch, score, aggregate and correlate pipeline for one ticker.
type TickerSyncStrategy struct {
	logger *logger.Logger
	syncer TickerSyncer
}

// NewTickerSyncStrategy creates a new instance of TickerSyncStrategy.
func NewTickerSyncStrategy(log *logger.Logger, syncer TickerSyncer) *TickerSyncStrategy {
	return &TickerSyncStrategy{logger: log, syncer: syncer}
}

// GetType returns the task type this strategy handles.
func (s *TickerSyncStrategy) GetType() entity.TaskType {
	return entity.TaskTypeTickerSync
}

// Execute returns the JSON SyncResult as output, even when some steps failed.
func (s *TickerSyncStrategy) Execute(ctx context.Context, task *dto.SyncTask) (string, error) {
	s.logger.DebugContext(ctx, "Running ticker sync", logger.IntField("lookback_days", task.LookbackDays))
	result, err := s.syncer.Sync(ctx, *task)
	return resultOutput(result, err)
}

func resultOutput(result *dto.SyncResult, runErr error) (string, error) {
	if result == nil {
		return "", runErr
	}
	output, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sync result: %w", err)
	}
	return string(output), runErr
}
