package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/dto"
)

func TestFormatSentimentDigest(t *testing.T) {
	change := 0.0123
	days := []dto.DailySentimentDigest{
		{
			Date:          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			Label:         entity.AggregateNegative,
			Confidence:    0.4,
			ArticleCount:  3,
			PositiveWords: 2,
			NegativeWords: 7,
			NextDayChange: &change,
		},
		{
			Date:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Label: entity.AggregateNoNewsData,
		},
	}

	messages := FormatSentimentDigest("AAPL", days)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Contains(t, msg, "Daily News Sentiment AAPL")
	assert.Contains(t, msg, "2024-03-04")
	assert.Contains(t, msg, "NEG (40%, 3 articles)")
	assert.Contains(t, msg, "+2 / -7")
	assert.Contains(t, msg, "*1D:* +1.23%")
	assert.Contains(t, msg, "*2W:* pending")
	assert.Contains(t, msg, "No news")
}

func TestFormatSentimentDigest_SplitsLongDigests(t *testing.T) {
	var days []dto.DailySentimentDigest
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		days = append(days, dto.DailySentimentDigest{Date: start.AddDate(0, 0, i), Label: entity.AggregatePositive, Confidence: 0.9, ArticleCount: 1})
	}

	messages := FormatSentimentDigest("MSFT", days)
	require.Greater(t, len(messages), 1)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.True(t, strings.HasPrefix(messages[1], "---*MSFT sentiment part 2*---"))
}

func TestFormatSentimentDigest_Empty(t *testing.T) {
	assert.Equal(t, []string{"No sentiment data for *AAPL* yet."}, FormatSentimentDigest("AAPL", nil))
}
