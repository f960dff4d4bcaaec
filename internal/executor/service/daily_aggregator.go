package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/sentiment"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// DailyAggregator keeps one CombinedDailySentiment per (ticker, date) in step with the word count records.
type DailyAggregator struct {
	log           *logger.Logger
	wordCountRepo repository.WordCountRepository
	combinedRepo  repository.CombinedSentimentRepository
	now           func() time.Time
}

func NewDailyAggregator(log *logger.Logger, wordCountRepo repository.WordCountRepository, combinedRepo repository.CombinedSentimentRepository) *DailyAggregator {
	return &DailyAggregator{
		log:           log,
		wordCountRepo: wordCountRepo,
		combinedRepo:  combinedRepo,
		now:           utils.Today,
	}
}

// Aggregate recombines every date whose records changed after its combined row was written,
// plus every date without a combined row. It returns the number of rows written.
func (a *DailyAggregator) Aggregate(ctx context.Context, ticker string) (int, error) {
	records, err := a.wordCountRepo.FindByTicker(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to load word count records: %w", err)
	}
	existing, err := a.combinedRepo.FindByTicker(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to load combined sentiment: %w", err)
	}

	combinedByDate := make(map[string]entity.CombinedDailySentiment, len(existing))
	for _, c := range existing {
		combinedByDate[utils.FormatDate(c.Date)] = c
	}

	var (
		dates  []string
		byDate = make(map[string][]entity.WordCountRecord)
	)
	for _, r := range records {
		key := utils.FormatDate(r.Date)
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], r)
	}

	today := a.now()
	written := 0
	for _, key := range dates {
		group := byDate[key]
		if current, ok := combinedByDate[key]; ok && !changedSince(group, current.UpdatedAt) {
			continue
		}

		combined, ok := sentiment.Combine(ticker, utils.DateOnly(group[0].Date), group, today)
		if !ok {
			continue
		}
		if err := a.combinedRepo.Upsert(ctx, &combined); err != nil {
			return written, fmt.Errorf("failed to store combined sentiment for %s: %w", key, err)
		}
		written++

		a.log.DebugContext(ctx, "Combined daily sentiment",
			logger.StringField("date", key),
			logger.StringField("label", string(combined.AggregateLabel)),
			logger.FloatField("confidence", combined.AggregateConfidence),
		)
	}

	return written, nil
}

func changedSince(records []entity.WordCountRecord, since time.Time) bool {
	for _, r := range records {
		if r.UpdatedAt.After(since) {
			return true
		}
	}
	return false
}
