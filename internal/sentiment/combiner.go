package sentiment

import (
	"time"

	"golang-stock-sentiment/internal/entity"
)

type group struct {
	sum   float64
	count int
}

// mean keeps a single member's raw confidence and averages larger groups.
func (g group) mean() float64 {
	if g.count > 1 {
		return g.sum / float64(g.count)
	}
	return g.sum
}

// Combine merges the WordCountRecords of one (ticker, date) into a CombinedDailySentiment.
//
// The label is decided in two stages. First the mean confidences of the Positive, Neutral and
// Negative groups are compared (ties: POS, then NEUT). Then the group with the strictly largest
// article count, if any, overrides that choice. The aggregate confidence is the mean of the
// winning group. A NoNewsData record short-circuits the date to NoNewsData.
//
// The change fields are copied from the last non-Fail record in the slice. The second return value is
// false when nothing can be combined yet, i.e. the date only has Fail records.
func Combine(ticker string, date time.Time, records []entity.WordCountRecord, now time.Time) (entity.CombinedDailySentiment, bool) {
	combined := entity.CombinedDailySentiment{
		Ticker:      ticker,
		Date:        date,
		LastUpdated: now,
	}
	if len(records) == 0 {
		return combined, false
	}

	var (
		groups [3]group
		noNews bool
		last   *entity.WordCountRecord
	)
	for i, r := range records {
		combined.PositiveWordTotal += r.PositiveWordCount
		combined.NegativeWordTotal += r.NegativeWordCount

		switch r.SentimentLabel {
		case entity.SentimentPositive:
			groups[Positive].sum += r.SentimentConfidence
			groups[Positive].count++
		case entity.SentimentNeutral:
			groups[Neutral].sum += r.SentimentConfidence
			groups[Neutral].count++
		case entity.SentimentNegative:
			groups[Negative].sum += r.SentimentConfidence
			groups[Negative].count++
		case entity.SentimentNoNewsData:
			noNews = true
		}
		if r.SentimentLabel != entity.SentimentFail {
			last = &records[i]
		}
	}

	if last != nil {
		combined.NextDayChange = copyChange(last.NextDayChange)
		combined.TwoWeekChange = copyChange(last.TwoWeekChange)
		combined.OneMonthChange = copyChange(last.OneMonthChange)
	}

	if noNews {
		combined.AggregateLabel = entity.AggregateNoNewsData
		return combined, true
	}

	scored := groups[Positive].count + groups[Neutral].count + groups[Negative].count
	if scored == 0 {
		return combined, false
	}
	combined.ArticleCount = scored

	winner := PickLabel(groups[Positive].mean(), groups[Neutral].mean(), groups[Negative].mean())
	if byCount, ok := StrictMax(groups[Positive].count, groups[Neutral].count, groups[Negative].count); ok {
		winner = byCount
	}

	combined.AggregateLabel = winner.Aggregate()
	combined.AggregateConfidence = groups[winner].mean()
	return combined, true
}

func copyChange(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
