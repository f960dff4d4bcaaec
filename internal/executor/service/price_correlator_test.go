package service

import (
	"context"
	"testing"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorrelator(prices *fakePriceRepo, words *fakeWordCountRepo, combined *fakeCombinedRepo) *PriceCorrelator {
	return NewPriceCorrelator(testSentimentConfig(), logger.NewNop(), prices, words, combined)
}

func marchPrices() *fakePriceRepo {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-02", 100)
	prices.add("AAPL", "2026-03-03", 110)
	prices.add("AAPL", "2026-03-16", 125)
	prices.add("AAPL", "2026-03-30", 80)
	return prices
}

func TestPercentChange_NextTradingDay(t *testing.T) {
	c := newTestCorrelator(marchPrices(), nil, nil)

	change, err := c.PercentChange(context.Background(), "AAPL", mustDate("2026-03-02"), 1)
	require.NoError(t, err)
	assert.True(t, change.Resolved)
	assert.InDelta(t, 0.0909, change.Value, 1e-4)
}

func TestPercentChange_NotYetAvailable(t *testing.T) {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-02", 100)
	prices.add("AAPL", "2026-03-03", 110)
	c := newTestCorrelator(prices, nil, nil)

	_, err := c.PercentChange(context.Background(), "AAPL", mustDate("2026-03-02"), 14)
	assert.ErrorIs(t, err, ErrPriceDataUnavailable)

	_, err = c.PercentChange(context.Background(), "MSFT", mustDate("2026-03-02"), 1)
	assert.ErrorIs(t, err, ErrPriceDataUnavailable)
}

func TestPercentChange_FlatMoveIsEpsilon(t *testing.T) {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-02-27", 100)
	prices.add("AAPL", "2026-03-02", 100)
	c := newTestCorrelator(prices, nil, nil)

	// Saturday base falls back to Friday's close and Sunday's target rolls to Monday.
	change, err := c.PercentChange(context.Background(), "AAPL", mustDate("2026-02-28"), 1)
	require.NoError(t, err)
	assert.True(t, change.Resolved)
	assert.Equal(t, 0.00001, change.Value)
}

func TestPercentChange_GapResolvesToZero(t *testing.T) {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-02", 100)
	prices.add("AAPL", "2026-03-20", 120)
	c := newTestCorrelator(prices, nil, nil)

	change, err := c.PercentChange(context.Background(), "AAPL", mustDate("2026-03-02"), 1)
	require.NoError(t, err)
	assert.True(t, change.Resolved)
	assert.Zero(t, change.Value)
}

func TestPercentChange_MissingBaseResolvesToZero(t *testing.T) {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-03", 110)
	c := newTestCorrelator(prices, nil, nil)

	change, err := c.PercentChange(context.Background(), "AAPL", mustDate("2026-03-02"), 1)
	require.NoError(t, err)
	assert.True(t, change.Resolved)
	assert.Zero(t, change.Value)
}

func TestChangesFor_LeavesFutureHorizonsNil(t *testing.T) {
	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-02", 100)
	prices.add("AAPL", "2026-03-03", 110)
	c := newTestCorrelator(prices, nil, nil)

	changes := c.ChangesFor(context.Background(), "AAPL", mustDate("2026-03-02"))
	require.NotNil(t, changes.NextDay)
	assert.InDelta(t, 0.0909, *changes.NextDay, 1e-4)
	assert.Nil(t, changes.TwoWeek)
	assert.Nil(t, changes.OneMonth)
}

func TestResolveHorizons(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	words := newFakeWordCountRepo(clock)
	combined := newFakeCombinedRepo(clock)
	day := mustDate("2026-03-02")

	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", Date: day, ContentHash: "a", SentimentLabel: entity.SentimentPositive, SentimentConfidence: 0.9}))
	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", Date: day, ContentHash: "b", SentimentLabel: entity.SentimentFail}))
	require.NoError(t, combined.Upsert(ctx, &entity.CombinedDailySentiment{Ticker: "AAPL", Date: day, AggregateLabel: entity.AggregatePositive}))

	c := newTestCorrelator(marchPrices(), words, combined)

	resolved, err := c.ResolveHorizons(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 3, resolved)

	rec := words.get("AAPL", "a")
	require.NotNil(t, rec.NextDayChange)
	require.NotNil(t, rec.TwoWeekChange)
	require.NotNil(t, rec.OneMonthChange)
	assert.InDelta(t, 0.0909, *rec.NextDayChange, 1e-4)
	assert.InDelta(t, 0.2, *rec.TwoWeekChange, 1e-9)
	assert.InDelta(t, -0.25, *rec.OneMonthChange, 1e-9)
	assert.Nil(t, words.get("AAPL", "b").NextDayChange)

	row, err := combined.FindByTickerAndDate(ctx, "AAPL", day)
	require.NoError(t, err)
	require.NotNil(t, row.OneMonthChange)
	assert.InDelta(t, -0.25, *row.OneMonthChange, 1e-9)

	resolved, err = c.ResolveHorizons(ctx, "AAPL")
	require.NoError(t, err)
	assert.Zero(t, resolved)
}

func TestResolveHorizons_WaitsForPrices(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	words := newFakeWordCountRepo(clock)
	day := mustDate("2026-03-02")
	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", Date: day, ContentHash: "a", SentimentLabel: entity.SentimentNegative}))

	prices := &fakePriceRepo{}
	prices.add("AAPL", "2026-03-02", 100)
	prices.add("AAPL", "2026-03-03", 90)
	c := newTestCorrelator(prices, words, newFakeCombinedRepo(clock))

	resolved, err := c.ResolveHorizons(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, resolved)

	rec := words.get("AAPL", "a")
	require.NotNil(t, rec.NextDayChange)
	assert.Nil(t, rec.TwoWeekChange)
	assert.Nil(t, rec.OneMonthChange)
}
