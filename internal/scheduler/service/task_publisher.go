package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	executordto "golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// TaskPublisher hands a sync task to the sentiment service.
type TaskPublisher interface {
	Publish(ctx context.Context, task executordto.SyncTask) error
}

// NewRedisTaskPublisher creates a TaskPublisher that appends to the ticker sync stream.
func NewRedisTaskPublisher(redisClient redis.Cmdable, maxLen int64) TaskPublisher {
	return &redisTaskPublisher{redisClient: redisClient, maxLen: maxLen}
}

type redisTaskPublisher struct {
	redisClient redis.Cmdable
	maxLen      int64
}

func (p *redisTaskPublisher) Publish(ctx context.Context, task executordto.SyncTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	return p.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamTickerSync,
		Values: map[string]interface{}{common.RedisStreamPayloadField: string(payload)},
		MaxLen: p.maxLen, // Limit the stream size
		Approx: true,
	}).Err()
}

// SyncEnqueuer records a QUEUED SyncExecution and publishes the matching task.
type SyncEnqueuer struct {
	executionRepo repository.SyncExecutionRepository
	publisher     TaskPublisher
	logger        *logger.Logger
	now           func() time.Time
}

func NewSyncEnqueuer(executionRepo repository.SyncExecutionRepository, publisher TaskPublisher, log *logger.Logger) *SyncEnqueuer {
	return &SyncEnqueuer{executionRepo: executionRepo, publisher: publisher, logger: log, now: time.Now}
}

// Enqueue returns the created execution. When publishing fails the execution is marked FAILED and the error returned.
func (e *SyncEnqueuer) Enqueue(ctx context.Context, ticker string, taskType entity.TaskType, lookbackDays int, notify bool) (*entity.SyncExecution, error) {
	execution := &entity.SyncExecution{
		Ticker:       ticker,
		TaskType:     taskType,
		LookbackDays: lookbackDays,
		Notify:       notify,
		Status:       entity.StatusQueued,
		StartedAt:    e.now(),
	}
	if err := e.executionRepo.Create(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to create sync execution: %w", err)
	}

	err := e.publisher.Publish(ctx, executordto.SyncTask{
		ExecutionID:  execution.ID,
		Ticker:       ticker,
		TaskType:     taskType,
		LookbackDays: lookbackDays,
		Notify:       notify,
	})
	if err != nil {
		e.logger.Error("Failed to enqueue sync task", logger.ErrorField(err), logger.IntField("execution_id", int(execution.ID)))
		execution.Status = entity.StatusFailed
		execution.CompletedAt = sql.NullTime{Time: e.now(), Valid: true}
		execution.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		if errInner := e.executionRepo.Update(ctx, execution); errInner != nil {
			e.logger.Error("Failed to update sync execution", logger.ErrorField(errInner), logger.IntField("execution_id", int(execution.ID)))
		}
		return execution, fmt.Errorf("failed to enqueue sync task: %w", err)
	}

	e.logger.Info("Sync task published successfully",
		logger.StringField("ticker", ticker),
		logger.StringField("task_type", string(taskType)),
		logger.IntField("execution_id", int(execution.ID)))
	return execution, nil
}
