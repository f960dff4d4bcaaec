package strategy

import (
	"context"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"
)

// HorizonBackfillStrategy refreshes prices and fills pending price-change horizons without fetching news.
type HorizonBackfillStrategy struct {
	logger *logger.Logger
	syncer TickerSyncer
}

// NewHorizonBackfillStrategy creates a new instance of HorizonBackfillStrategy.
func NewHorizonBackfillStrategy(log *logger.Logger, syncer TickerSyncer) *HorizonBackfillStrategy {
	return &HorizonBackfillStrategy{logger: log, syncer: syncer}
}

// GetType returns the task type this strategy handles.
func (s *HorizonBackfillStrategy) GetType() entity.TaskType {
	return entity.TaskTypeHorizonBackfill
}

func (s *HorizonBackfillStrategy) Execute(ctx context.Context, task *dto.SyncTask) (string, error) {
	s.logger.InfoContext(ctx, "Back-filling price horizons")
	result, err := s.syncer.ResolveHorizons(ctx, task.Ticker)
	return resultOutput(result, err)
}
