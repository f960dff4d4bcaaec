package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(tickers *fakeTickerRepo, publisher *fakePublisher, now time.Time) *schedulerService {
	log := logger.NewNop()
	svc := NewSchedulerService(tickers, NewSyncEnqueuer(&fakeExecutionRepo{}, publisher, log), log, time.Minute).(*schedulerService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSchedulerService_ProcessJobsEnqueuesDueTickers(t *testing.T) {
	// Wednesday evening, after the 21:30 run.
	now := time.Date(2026, 3, 4, 22, 0, 0, 0, utils.MarketLocation())
	tickers := newFakeTickerRepo()
	publisher := &fakePublisher{}
	ctx := context.Background()

	require.NoError(t, tickers.Create(ctx, &entity.WatchedTicker{Ticker: "AAPL", CronExpression: "30 21 * * 1-5", LookbackDays: 7, IsActive: true}))
	require.NoError(t, tickers.Create(ctx, &entity.WatchedTicker{Ticker: "IDLE", CronExpression: "30 21 * * 1-5", IsActive: false}))
	require.NoError(t, tickers.Create(ctx, &entity.WatchedTicker{
		Ticker:         "LATER",
		CronExpression: "30 21 * * 1-5",
		IsActive:       true,
		NextExecution:  sql.NullTime{Time: now.Add(time.Hour), Valid: true},
	}))

	newTestScheduler(tickers, publisher, now).ProcessJobs(ctx)

	tasks := publisher.published()
	require.Len(t, tasks, 1)
	assert.Equal(t, "AAPL", tasks[0].Ticker)
	assert.Equal(t, entity.TaskTypeTickerSync, tasks[0].TaskType)

	aapl := tickers.get("AAPL")
	require.True(t, aapl.NextExecution.Valid)
	assert.True(t, aapl.NextExecution.Time.Equal(time.Date(2026, 3, 5, 21, 30, 0, 0, utils.MarketLocation())))
	assert.True(t, aapl.LastExecution.Time.Equal(now))
}

func TestSchedulerService_ProcessJobsSkipsWeekendToMonday(t *testing.T) {
	now := time.Date(2026, 3, 6, 21, 45, 0, 0, utils.MarketLocation()) // Friday
	tickers := newFakeTickerRepo()
	require.NoError(t, tickers.Create(context.Background(), &entity.WatchedTicker{Ticker: "AAPL", CronExpression: "30 21 * * 1-5", IsActive: true}))

	newTestScheduler(tickers, &fakePublisher{}, now).ProcessJobs(context.Background())

	next := tickers.get("AAPL").NextExecution.Time
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 9, next.Day())
}

func TestSchedulerService_ProcessJobsKeepsTickerDueWhenPublishFails(t *testing.T) {
	now := time.Date(2026, 3, 4, 22, 0, 0, 0, utils.MarketLocation())
	tickers := newFakeTickerRepo()
	require.NoError(t, tickers.Create(context.Background(), &entity.WatchedTicker{Ticker: "AAPL", CronExpression: "30 21 * * 1-5", IsActive: true}))

	newTestScheduler(tickers, &fakePublisher{err: errors.New("redis down")}, now).ProcessJobs(context.Background())

	assert.False(t, tickers.get("AAPL").NextExecution.Valid)
}

func TestSchedulerService_StartStopsOnCancel(t *testing.T) {
	svc := newTestScheduler(newFakeTickerRepo(), &fakePublisher{}, time.Now())
	svc.pollingInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
