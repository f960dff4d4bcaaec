package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/utils"
)

const maxMessageLen = 4090

// FormatSentimentDigest formats the combined daily sentiment of a ticker into Markdown messages for Telegram,
// ensuring each message does not exceed the maximum length.
func FormatSentimentDigest(ticker string, days []dto.DailySentimentDigest) []string {
	if len(days) == 0 {
		return []string{fmt.Sprintf("No sentiment data for *%s* yet.", ticker)}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString(fmt.Sprintf("📰 *Daily News Sentiment %s* 📰\n\n", ticker))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*%s sentiment part %d*---\n\n", ticker, part))
		}
	}
	startNewPart()

	for _, d := range days {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("📅 *%s*\n", utils.FormatDate(d.Date)))
		if d.Label == entity.AggregateNoNewsData {
			entry.WriteString("😶 No news\n\n")
		} else {
			entry.WriteString(fmt.Sprintf("%s *Sentiment:* %s (%.0f%%, %d articles)\n", labelIcon(d.Label), d.Label, d.Confidence*100, d.ArticleCount))
			entry.WriteString(fmt.Sprintf("🔤 *Words:* +%d / -%d\n", d.PositiveWords, d.NegativeWords))
			entry.WriteString(fmt.Sprintf("📈 *1D:* %s | *2W:* %s | *1M:* %s\n\n",
				formatChange(d.NextDayChange), formatChange(d.TwoWeekChange), formatChange(d.OneMonthChange)))
		}

		entryString := entry.String()
		if currentMessage.Len()+len(entryString) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func labelIcon(label entity.AggregateLabel) string {
	switch label {
	case entity.AggregatePositive:
		return "😊"
	case entity.AggregateNegative:
		return "😟"
	default:
		return "😐"
	}
}

// formatChange renders an unresolved horizon as "pending" so it is never read as a flat move.
func formatChange(change *float64) string {
	if change == nil {
		return "pending"
	}
	return fmt.Sprintf("%+.2f%%", *change*100)
}

func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}
