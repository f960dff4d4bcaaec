package service

import (
	"context"
	"database/sql"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService defines the interface for the ticker sync scheduling service.
type SchedulerService interface {
	Start(ctx context.Context)
	ProcessJobs(ctx context.Context)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(tickerRepo repository.WatchedTickerRepository, enqueuer *SyncEnqueuer, log *logger.Logger, pollingInterval time.Duration) SchedulerService {
	return &schedulerService{
		tickerRepo:      tickerRepo,
		enqueuer:        enqueuer,
		logger:          log,
		pollingInterval: pollingInterval,
		cronParser:      newCronParser(),
		now:             utils.TimeNowMarket,
	}
}

func newCronParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

type schedulerService struct {
	tickerRepo      repository.WatchedTickerRepository
	enqueuer        *SyncEnqueuer
	logger          *logger.Logger
	pollingInterval time.Duration
	cronParser      cron.Parser
	now             func() time.Time
}

// Start begins the periodic polling loop.
func (s *schedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.ProcessJobs(ctx)
		}
	}
}

// ProcessJobs finds and enqueues the tickers that are due.
func (s *schedulerService) ProcessJobs(ctx context.Context) {
	due, err := s.tickerRepo.FindDue(ctx, s.now())
	if err != nil {
		s.logger.Error("Failed to find due tickers", logger.ErrorField(err))
		return
	}

	for _, watched := range due {
		s.publishTask(ctx, watched)
	}
}

func (s *schedulerService) publishTask(ctx context.Context, watched entity.WatchedTicker) {
	now := s.now()

	if _, err := s.enqueuer.Enqueue(ctx, watched.Ticker, entity.TaskTypeTickerSync, watched.LookbackDays, watched.Notify); err != nil {
		// next_execution is left as is so the ticker is retried on the next poll.
		return
	}

	// Update ticker for next run
	schedule, err := s.cronParser.Parse(watched.CronExpression)
	if err != nil {
		s.logger.Error("Failed to parse cron expression", logger.ErrorField(err), logger.StringField("ticker", watched.Ticker))
		return
	}

	watched.LastExecution = sql.NullTime{Time: now, Valid: true}
	watched.NextExecution = sql.NullTime{Time: schedule.Next(now), Valid: true}

	if err := s.tickerRepo.Update(ctx, &watched); err != nil {
		s.logger.Error("Failed to update next execution time", logger.ErrorField(err), logger.StringField("ticker", watched.Ticker))
	}
}
