package service

import (
	"context"
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAggregator_Aggregate(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	words := newFakeWordCountRepo(clock)
	combined := newFakeCombinedRepo(clock)
	agg := NewDailyAggregator(logger.NewNop(), words, combined)
	agg.now = func() time.Time { return mustDate("2026-03-05") }

	monday, tuesday := mustDate("2026-03-02"), mustDate("2026-03-03")
	for _, r := range []entity.WordCountRecord{
		{ContentHash: "a", Date: monday, SentimentLabel: entity.SentimentPositive, SentimentConfidence: 0.9, PositiveWordCount: 3},
		{ContentHash: "b", Date: monday, SentimentLabel: entity.SentimentPositive, SentimentConfidence: 0.8, NegativeWordCount: 1},
		{ContentHash: "c", Date: monday, SentimentLabel: entity.SentimentNegative, SentimentConfidence: 0.7, NegativeWordCount: 2},
		{ContentHash: "d", Date: tuesday, SentimentLabel: entity.SentimentFail},
	} {
		r.Ticker = "AAPL"
		require.NoError(t, words.Upsert(ctx, &r))
	}

	written, err := agg.Aggregate(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, written, "a Fail-only date has nothing to combine")

	row, err := combined.FindByTickerAndDate(ctx, "AAPL", monday)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, entity.AggregatePositive, row.AggregateLabel)
	assert.InDelta(t, 0.85, row.AggregateConfidence, 1e-9)
	assert.Equal(t, 3, row.ArticleCount)
	assert.Equal(t, 3, row.PositiveWordTotal)
	assert.Equal(t, 3, row.NegativeWordTotal)
	assert.Equal(t, mustDate("2026-03-05"), row.LastUpdated)

	written, err = agg.Aggregate(ctx, "AAPL")
	require.NoError(t, err)
	assert.Zero(t, written, "unchanged dates are not recombined")

	for _, hash := range []string{"e", "f"} {
		require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: hash, Date: monday, SentimentLabel: entity.SentimentNegative, SentimentConfidence: 0.6}))
	}

	written, err = agg.Aggregate(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	row, err = combined.FindByTickerAndDate(ctx, "AAPL", monday)
	require.NoError(t, err)
	assert.Equal(t, entity.AggregateNegative, row.AggregateLabel)
	assert.Equal(t, 5, row.ArticleCount)
}

func TestDailyAggregator_RetriedFailRecombines(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	words := newFakeWordCountRepo(clock)
	combined := newFakeCombinedRepo(clock)
	agg := NewDailyAggregator(logger.NewNop(), words, combined)
	day := mustDate("2026-03-02")

	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: "a", Date: day, SentimentLabel: entity.SentimentNeutral, SentimentConfidence: 0.5}))
	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: "b", Date: day, SentimentLabel: entity.SentimentFail}))
	_, err := agg.Aggregate(ctx, "AAPL")
	require.NoError(t, err)

	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: "b", Date: day, SentimentLabel: entity.SentimentPositive, SentimentConfidence: 0.95}))
	written, err := agg.Aggregate(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	row, err := combined.FindByTickerAndDate(ctx, "AAPL", day)
	require.NoError(t, err)
	assert.Equal(t, 2, row.ArticleCount)
	assert.Equal(t, entity.AggregatePositive, row.AggregateLabel, "equal counts fall back to the higher mean")
}
