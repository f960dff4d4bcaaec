package strategy

import (
	"context"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/dto"
)

// JobExecutionStrategy defines the interface for different task execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, task *dto.SyncTask) (string, error)
	GetType() entity.TaskType
}

// TickerSyncer runs the sentiment pipeline for a ticker.
type TickerSyncer interface {
	Sync(ctx context.Context, task dto.SyncTask) (*dto.SyncResult, error)
	ResolveHorizons(ctx context.Context, ticker string) (*dto.SyncResult, error)
}
