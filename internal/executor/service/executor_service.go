package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/executor/strategy"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ExecutorService consumes sync tasks from the Redis stream and runs the matching strategy.
type ExecutorService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Execute(ctx context.Context, task dto.SyncTask) (string, error)
}

// NewExecutorService creates a new ExecutorService. notifier may be nil.
func NewExecutorService(
	cfg *config.Config,
	redisClient redis.Cmdable,
	executionRepo repository.SyncExecutionRepository,
	log *logger.Logger,
	notifier telegram.Notifier,
	strategies []strategy.JobExecutionStrategy,
) ExecutorService {
	strategyMap := make(map[entity.TaskType]strategy.JobExecutionStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}

	return &executorService{
		cfg:                cfg,
		redisClient:        redisClient,
		executionRepo:      executionRepo,
		logger:             log,
		notifier:           notifier,
		executorStrategies: strategyMap,
	}
}

type executorService struct {
	cfg                *config.Config
	redisClient        redis.Cmdable
	executionRepo      repository.SyncExecutionRepository
	logger             *logger.Logger
	notifier           telegram.Notifier
	executorStrategies map[entity.TaskType]strategy.JobExecutionStrategy
}

// ProcessTask dequeues and executes a single task. A failed task stays pending for ProcessRetries.
func (s *executorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamTickerSync, ">"}, // ">" means only new messages
		Count:    1,
		Block:    s.cfg.Executor.RedisStreamBlockTimeout,
	}).Result()

	if err != nil {
		// Cancellation and an empty read are expected during shutdown or idle periods.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	s.handleMessage(ctx, streams[0].Messages[0])
}

// ProcessRetries reclaims one task that stayed pending longer than the max idle duration.
func (s *executorService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamTickerSync,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Executor.RedisStreamMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to claim sync task on retry", logger.ErrorField(err))
		return
	}
	if len(msgs) == 0 {
		s.logger.Debug("Retry no pending messages found", logger.StringField("stream", common.RedisStreamTickerSync))
		return
	}

	msg := msgs[0]
	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamTickerSync,
		Group:  common.RedisStreamGroup,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}
	if len(pendingInfo) == 0 {
		s.logger.Warn("pending msg not found, but exist on xautoclaim", logger.StringField("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Executor.RedisStreamMaxRetry) {
		s.giveUp(ctx, msg, int(pendingInfo[0].RetryCount))
		return
	}

	s.logger.Info("Retrying pending sync task", logger.StringField("message_id", msg.ID), logger.IntField("retry_count", int(pendingInfo[0].RetryCount)))
	s.handleMessage(ctx, msg)
}

// Execute runs one task, recording its lifecycle on the SyncExecution row when the task carries one.
func (s *executorService) Execute(ctx context.Context, task dto.SyncTask) (string, error) {
	ctx = logger.WithTicker(ctx, task.Ticker)

	var execution *entity.SyncExecution
	if task.ExecutionID != 0 {
		found, err := s.executionRepo.FindByID(ctx, task.ExecutionID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.WarnContext(ctx, "Sync execution not found, running untracked", logger.IntField("execution_id", int(task.ExecutionID)))
		case err != nil:
			return "", fmt.Errorf("failed to find sync execution %d: %w", task.ExecutionID, err)
		default:
			execution = found
			execution.Status = entity.StatusRunning
			execution.StartedAt = time.Now()
			s.updateExecution(ctx, execution)
		}
	}

	execCtx, cancel := context.WithTimeout(ctx, s.cfg.Executor.RedisStreamTaskExecutionTimeout)
	defer cancel()

	var (
		output string
		err    error
	)
	executor, ok := s.executorStrategies[task.TaskType]
	if !ok {
		err = fmt.Errorf("no executor strategy found for task type: %s", task.TaskType)
	} else {
		output, err = executor.Execute(execCtx, &task)
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "Sync task failed", logger.ErrorField(err), logger.StringField("task_type", string(task.TaskType)))
	} else {
		s.logger.InfoContext(ctx, "Sync task executed successfully", logger.StringField("task_type", string(task.TaskType)))
	}

	if execution != nil {
		if err != nil {
			execution.Status = entity.StatusFailed
			execution.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		} else {
			execution.Status = entity.StatusCompleted
			execution.ErrorMessage = sql.NullString{}
		}
		execution.Output = sql.NullString{String: output, Valid: output != ""}
		execution.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
		s.updateExecution(ctx, execution)
	}

	return output, err
}

func (s *executorService) handleMessage(ctx context.Context, msg redis.XMessage) {
	task, err := decodeTask(msg)
	if err != nil {
		s.logger.Error("Dropping malformed sync task", logger.ErrorField(err), logger.StringField("message_id", msg.ID))
		// Malformed payloads never succeed, so they are acknowledged right away.
		_ = s.ackAndDelete(ctx, msg.ID)
		return
	}

	if _, err := s.Execute(ctx, task); err != nil {
		return
	}
	_ = s.ackAndDelete(ctx, msg.ID)
}

func (s *executorService) giveUp(ctx context.Context, msg redis.XMessage, retryCount int) {
	task, err := decodeTask(msg)
	if err != nil {
		_ = s.ackAndDelete(ctx, msg.ID)
		return
	}
	ctx = logger.WithTicker(ctx, task.Ticker)

	s.logger.ErrorContext(ctx, "pending msg retry count exceeded",
		logger.StringField("message_id", msg.ID),
		logger.IntField("retry_count", retryCount),
		logger.IntField("max_retry", s.cfg.Executor.RedisStreamMaxRetry),
	)

	if s.notifier != nil {
		alert := telegram.FormatErrorAlertMessage(time.Now(), "Sync retry exceeded",
			fmt.Sprintf("%s task for %s failed %d times", task.TaskType, task.Ticker, retryCount), msg.Values[common.RedisStreamPayloadField].(string))
		if err := s.notifier.SendMessage(alert); err != nil {
			s.logger.ErrorContext(ctx, "Failed to send retry exceeded alert", logger.ErrorField(err))
		}
	}
	_ = s.ackAndDelete(ctx, msg.ID)
}

func (s *executorService) ackAndDelete(ctx context.Context, messageID string) error {
	if err := s.redisClient.XAck(ctx, common.RedisStreamTickerSync, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.logger.Error("Failed to acknowledge sync task", logger.ErrorField(err), logger.StringField("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, common.RedisStreamTickerSync, messageID).Err(); err != nil {
		s.logger.Error("Failed to delete sync task", logger.ErrorField(err), logger.StringField("message_id", messageID))
		return err
	}
	return nil
}

func (s *executorService) updateExecution(ctx context.Context, execution *entity.SyncExecution) {
	if err := s.executionRepo.Update(ctx, execution); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update sync execution", logger.ErrorField(err), logger.IntField("execution_id", int(execution.ID)))
	}
}

// decodeTask reads the JSON task from the payload field of a stream entry.
func decodeTask(msg redis.XMessage) (dto.SyncTask, error) {
	var task dto.SyncTask
	payload, ok := msg.Values[common.RedisStreamPayloadField].(string)
	if !ok {
		return task, fmt.Errorf("field %q not found or not a string", common.RedisStreamPayloadField)
	}
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return task, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	if task.Ticker == "" {
		return task, errors.New("task payload has no ticker")
	}
	return task, nil
}
