package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/sentiment"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// Horizon is a look-ahead window and the column that stores its change.
type Horizon struct {
	Days   int
	Column string
}

// Change is the outcome of one horizon lookup. A zero Value with Resolved=true is the terminal no-data result.
type Change struct {
	Value    float64
	Resolved bool
}

// Changes holds the three horizon results of one date. nil means unresolved.
type Changes struct {
	NextDay  *float64
	TwoWeek  *float64
	OneMonth *float64
}

// PriceCorrelator measures how the price moved after a news date.
type PriceCorrelator struct {
	cfg           config.Sentiment
	log           *logger.Logger
	priceRepo     repository.PriceRepository
	wordCountRepo repository.WordCountRepository
	combinedRepo  repository.CombinedSentimentRepository
	horizons      []Horizon
}

func NewPriceCorrelator(
	cfg config.Sentiment,
	log *logger.Logger,
	priceRepo repository.PriceRepository,
	wordCountRepo repository.WordCountRepository,
	combinedRepo repository.CombinedSentimentRepository,
) *PriceCorrelator {
	h := cfg.Horizons()
	return &PriceCorrelator{
		cfg:           cfg,
		log:           log,
		priceRepo:     priceRepo,
		wordCountRepo: wordCountRepo,
		combinedRepo:  combinedRepo,
		horizons: []Horizon{
			{Days: h[0], Column: repository.ColumnNextDayChange},
			{Days: h[1], Column: repository.ColumnTwoWeekChange},
			{Days: h[2], Column: repository.ColumnOneMonthChange},
		},
	}
}

// PercentChange compares the close at baseDate with the first close on or after baseDate+horizonDays.
//
// It returns ErrPriceDataUnavailable while the latest stored price is still before the target date.
// If no trading day exists within the search window the change resolves to 0. The base close is the
// close at baseDate, or the last close before it within the window when baseDate was not a trading day.
func (c *PriceCorrelator) PercentChange(ctx context.Context, ticker string, baseDate time.Time, horizonDays int) (Change, error) {
	baseDate = utils.DateOnly(baseDate)
	target := utils.AddDays(baseDate, horizonDays)

	latest, err := c.priceRepo.LatestDate(ctx, ticker)
	if err != nil {
		return Change{}, fmt.Errorf("failed to get latest price date: %w", err)
	}
	if latest == nil || utils.DateOnly(*latest).Before(target) {
		return Change{}, ErrPriceDataUnavailable
	}

	window := c.cfg.PriceSearchWindowDays
	if window <= 0 {
		window = 1
	}

	future, err := c.priceRepo.FindFirstOnOrAfter(ctx, ticker, target, utils.AddDays(target, window-1))
	if err != nil {
		return Change{}, fmt.Errorf("failed to find future price: %w", err)
	}
	if future == nil {
		return Change{Resolved: true}, nil
	}

	base, err := c.priceRepo.FindLastOnOrBefore(ctx, ticker, baseDate, utils.AddDays(baseDate, -(window-1)))
	if err != nil {
		return Change{}, fmt.Errorf("failed to find base price: %w", err)
	}
	if base == nil {
		return Change{Resolved: true}, nil
	}

	return Change{
		Value:    sentiment.PercentChange(base.Close, future.Close, c.cfg.FlatChangeEpsilon),
		Resolved: true,
	}, nil
}

// ChangesFor computes all three horizons of a date, leaving unresolved ones nil.
func (c *PriceCorrelator) ChangesFor(ctx context.Context, ticker string, date time.Time) Changes {
	var out Changes
	targets := []**float64{&out.NextDay, &out.TwoWeek, &out.OneMonth}

	for i, h := range c.horizons {
		change, err := c.PercentChange(ctx, ticker, date, h.Days)
		if err != nil {
			if !errors.Is(err, ErrPriceDataUnavailable) {
				c.log.WarnContext(ctx, "Failed to compute price change",
					logger.ErrorField(err),
					logger.StringField("date", utils.FormatDate(date)),
					logger.IntField("horizon_days", h.Days),
				)
			}
			continue
		}
		v := change.Value
		*targets[i] = &v
	}
	return out
}

// ResolveHorizons back-fills every still-NULL horizon of the ticker's scored records and their combined rows.
// It returns how many (date, horizon) pairs were resolved. Resolved values are never recomputed.
func (c *PriceCorrelator) ResolveHorizons(ctx context.Context, ticker string) (int, error) {
	records, err := c.wordCountRepo.FindUnresolved(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to find unresolved records: %w", err)
	}

	pending := make(map[string]map[string]bool)
	var dates []time.Time
	for _, r := range records {
		key := utils.FormatDate(r.Date)
		if _, ok := pending[key]; !ok {
			pending[key] = make(map[string]bool)
			dates = append(dates, utils.DateOnly(r.Date))
		}
		for _, h := range c.horizons {
			if changeOf(r, h.Column) == nil {
				pending[key][h.Column] = true
			}
		}
	}

	resolved := 0
	for _, date := range dates {
		if !utils.ShouldContinue(ctx, c.log) {
			return resolved, ctx.Err()
		}
		for _, h := range c.horizons {
			if !pending[utils.FormatDate(date)][h.Column] {
				continue
			}

			change, err := c.PercentChange(ctx, ticker, date, h.Days)
			if errors.Is(err, ErrPriceDataUnavailable) {
				continue
			}
			if err != nil {
				return resolved, err
			}

			if _, err := c.wordCountRepo.UpdateChange(ctx, ticker, date, h.Column, change.Value); err != nil {
				return resolved, fmt.Errorf("failed to update word count change: %w", err)
			}
			if _, err := c.combinedRepo.UpdateChange(ctx, ticker, date, h.Column, change.Value); err != nil {
				return resolved, fmt.Errorf("failed to update combined change: %w", err)
			}
			resolved++
		}
	}

	if resolved > 0 {
		c.log.InfoContext(ctx, "Resolved price horizons", logger.IntField("resolved", resolved))
	}
	return resolved, nil
}

func changeOf(r entity.WordCountRecord, column string) *float64 {
	switch column {
	case repository.ColumnNextDayChange:
		return r.NextDayChange
	case repository.ColumnTwoWeekChange:
		return r.TwoWeekChange
	default:
		return r.OneMonthChange
	}
}
