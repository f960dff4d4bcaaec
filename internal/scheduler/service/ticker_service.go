package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/scheduler/config"
	"golang-stock-sentiment/internal/scheduler/dto"
	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/pkg/logger"
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// NormalizeTicker upper-cases and validates a ticker symbol.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if !tickerPattern.MatchString(ticker) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, raw)
	}
	return ticker, nil
}

// TickerService defines the interface for managing the watch list.
type TickerService interface {
	CreateTicker(ctx context.Context, req *dto.CreateTickerRequest) (*dto.TickerResponse, error)
	GetAllTickers(ctx context.Context) ([]*dto.TickerResponse, error)
	DeleteTicker(ctx context.Context, ticker string) error
	TriggerSync(ctx context.Context, ticker string, req *dto.TriggerSyncRequest) (*dto.ExecutionHistoryResponse, error)
}

// NewTickerService creates a new ticker service.
func NewTickerService(cfg config.Scheduler, tickerRepo repository.WatchedTickerRepository, enqueuer *SyncEnqueuer, log *logger.Logger) TickerService {
	return &tickerService{
		cfg:        cfg,
		tickerRepo: tickerRepo,
		enqueuer:   enqueuer,
		logger:     log,
	}
}

type tickerService struct {
	cfg        config.Scheduler
	tickerRepo repository.WatchedTickerRepository
	enqueuer   *SyncEnqueuer
	logger     *logger.Logger
}

// CreateTicker adds a ticker to the watch list. Its first sync runs on the next scheduler poll.
func (s *tickerService) CreateTicker(ctx context.Context, req *dto.CreateTickerRequest) (*dto.TickerResponse, error) {
	ticker, err := NormalizeTicker(req.Ticker)
	if err != nil {
		return nil, err
	}

	cronExpression := strings.TrimSpace(req.CronExpression)
	if cronExpression == "" {
		cronExpression = s.cfg.DefaultCron
	}
	if _, err := newCronParser().Parse(cronExpression); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCron, err)
	}

	lookback := req.LookbackDays
	if lookback <= 0 {
		lookback = s.cfg.DefaultLookbackDays
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	_, err = s.tickerRepo.FindByTicker(ctx, ticker)
	switch {
	case err == nil:
		return nil, ErrTickerExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	watched := &entity.WatchedTicker{
		Ticker:         ticker,
		CronExpression: cronExpression,
		LookbackDays:   lookback,
		Notify:         req.Notify,
		IsActive:       active,
	}
	if err := s.tickerRepo.Create(ctx, watched); err != nil {
		return nil, err
	}

	s.logger.Info("Ticker added to watch list", logger.StringField("ticker", ticker))
	return mapToTickerResponse(watched), nil
}

// GetAllTickers retrieves the watch list.
func (s *tickerService) GetAllTickers(ctx context.Context) ([]*dto.TickerResponse, error) {
	tickers, err := s.tickerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TickerResponse, 0, len(tickers))
	for i := range tickers {
		responses = append(responses, mapToTickerResponse(&tickers[i]))
	}
	return responses, nil
}

// DeleteTicker removes a ticker from the watch list.
func (s *tickerService) DeleteTicker(ctx context.Context, raw string) error {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return err
	}
	if err := s.tickerRepo.DeleteByTicker(ctx, ticker); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to delete ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		}
		return err
	}
	s.logger.Info("Ticker deleted successfully", logger.StringField("ticker", ticker))
	return nil
}

// TriggerSync queues a sync right away. Unwatched tickers can be synced too, using the default settings.
func (s *tickerService) TriggerSync(ctx context.Context, raw string, req *dto.TriggerSyncRequest) (*dto.ExecutionHistoryResponse, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.TriggerSyncRequest{}
	}

	taskType := entity.TaskType(req.TaskType)
	switch taskType {
	case "":
		taskType = entity.TaskTypeTickerSync
	case entity.TaskTypeTickerSync, entity.TaskTypeHorizonBackfill:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskType, req.TaskType)
	}

	lookback, notify := s.cfg.DefaultLookbackDays, false
	watched, err := s.tickerRepo.FindByTicker(ctx, ticker)
	switch {
	case err == nil:
		lookback, notify = watched.LookbackDays, watched.Notify
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	if req.LookbackDays > 0 {
		lookback = req.LookbackDays
	}
	if req.Notify != nil {
		notify = *req.Notify
	}

	execution, err := s.enqueuer.Enqueue(ctx, ticker, taskType, lookback, notify)
	if err != nil {
		return nil, err
	}
	return mapToExecutionHistoryResponse(execution), nil
}

func mapToTickerResponse(t *entity.WatchedTicker) *dto.TickerResponse {
	return &dto.TickerResponse{
		ID:             t.ID,
		Ticker:         t.Ticker,
		CronExpression: t.CronExpression,
		LookbackDays:   t.LookbackDays,
		Notify:         t.Notify,
		IsActive:       t.IsActive,
		NextExecution:  t.NextExecution,
		LastExecution:  t.LastExecution,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
