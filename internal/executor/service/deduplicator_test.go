package service

import (
	"context"
	"errors"
	"testing"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicator_ShouldScore(t *testing.T) {
	ctx := context.Background()
	words := newFakeWordCountRepo(newFakeClock())
	dedup := NewDeduplicator(words)

	hash, skip, err := dedup.ShouldScore(ctx, "AAPL", "Apple reports 12% growth in services.")
	require.NoError(t, err)
	assert.False(t, skip)

	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: hash, SentimentLabel: entity.SentimentPositive}))

	again, skip, err := dedup.ShouldScore(ctx, "AAPL", "Apple reports 15% growth in services.")
	require.NoError(t, err)
	assert.Equal(t, hash, again, "numbers must not change the hash")
	assert.True(t, skip)

	_, skip, err = dedup.ShouldScore(ctx, "MSFT", "Apple reports 12% growth in services.")
	require.NoError(t, err)
	assert.False(t, skip, "dedup is per ticker")
}

func TestDeduplicator_RetriesFail(t *testing.T) {
	ctx := context.Background()
	words := newFakeWordCountRepo(newFakeClock())
	dedup := NewDeduplicator(words)
	hash, _ := sentiment.ContentHash("Shares slide after losses.")
	require.NoError(t, words.Upsert(ctx, &entity.WordCountRecord{Ticker: "AAPL", ContentHash: hash, SentimentLabel: entity.SentimentFail}))

	_, skip, err := dedup.ShouldScore(ctx, "AAPL", "Shares slide after losses.")
	require.NoError(t, err)
	assert.False(t, skip)
}

func TestDeduplicator_EmptyContent(t *testing.T) {
	dedup := NewDeduplicator(newFakeWordCountRepo(newFakeClock()))

	hash, skip, err := dedup.ShouldScore(context.Background(), "AAPL", " 12% $4.50 ")
	assert.ErrorIs(t, err, ErrEmptyArticle)
	assert.True(t, skip)
	assert.Equal(t, sentiment.EmptyContentHash, hash)
}

func TestDeduplicator_LookupError(t *testing.T) {
	words := newFakeWordCountRepo(newFakeClock())
	hash, _ := sentiment.ContentHash("Apple reports growth.")
	words.lookupErr[hash] = errors.New("connection reset")

	_, skip, err := NewDeduplicator(words).ShouldScore(context.Background(), "AAPL", "Apple reports growth.")
	assert.ErrorContains(t, err, "connection reset")
	assert.False(t, skip)
}
