package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"
	"golang-stock-sentiment/pkg/utils"
)

// SyncService runs the whole pipeline for one ticker: prices, news, scoring, aggregation, horizons and the digest.
type SyncService interface {
	Sync(ctx context.Context, task dto.SyncTask) (*dto.SyncResult, error)
	ResolveHorizons(ctx context.Context, ticker string) (*dto.SyncResult, error)
}

type syncService struct {
	cfg           *config.Config
	log           *logger.Logger
	priceProvider repository.PriceProvider
	newsProvider  repository.NewsProvider
	priceRepo     repository.PriceRepository
	newsRepo      repository.NewsArticleRepository
	combinedRepo  repository.CombinedSentimentRepository
	orchestrator  *ScoringOrchestrator
	aggregator    *DailyAggregator
	correlator    *PriceCorrelator
	notifier      telegram.Notifier
	now           func() time.Time
}

// NewSyncService creates a SyncService. notifier may be nil.
func NewSyncService(
	cfg *config.Config,
	log *logger.Logger,
	priceProvider repository.PriceProvider,
	newsProvider repository.NewsProvider,
	priceRepo repository.PriceRepository,
	newsRepo repository.NewsArticleRepository,
	combinedRepo repository.CombinedSentimentRepository,
	orchestrator *ScoringOrchestrator,
	aggregator *DailyAggregator,
	correlator *PriceCorrelator,
	notifier telegram.Notifier,
) SyncService {
	return &syncService{
		cfg:           cfg,
		log:           log,
		priceProvider: priceProvider,
		newsProvider:  newsProvider,
		priceRepo:     priceRepo,
		newsRepo:      newsRepo,
		combinedRepo:  combinedRepo,
		orchestrator:  orchestrator,
		aggregator:    aggregator,
		correlator:    correlator,
		notifier:      notifier,
		now:           utils.Today,
	}
}

// Sync never stops at the first failing step. Price and news failures still let the stored articles be
// scored. Every step error is collected into the result and summarised in the returned error.
func (s *syncService) Sync(ctx context.Context, task dto.SyncTask) (*dto.SyncResult, error) {
	ticker := strings.ToUpper(strings.TrimSpace(task.Ticker))
	ctx = logger.WithTicker(ctx, ticker)
	result := &dto.SyncResult{Ticker: ticker}

	lookback := task.LookbackDays
	if lookback <= 0 {
		lookback = s.cfg.Sentiment.DefaultLookbackDays
	}
	today := s.now()
	since := utils.AddDays(today, -lookback)

	s.log.InfoContext(ctx, "Starting ticker sync", logger.IntField("lookback_days", lookback))

	stored, err := s.syncPrices(ctx, ticker, today)
	result.PricesStored = stored
	s.collect(ctx, result, "prices", err)

	stored, err = s.syncNews(ctx, ticker, since)
	result.ArticlesStored = stored
	s.collect(ctx, result, "news", err)

	articles, err := s.newsRepo.FindSince(ctx, ticker, since)
	if err != nil {
		s.collect(ctx, result, "load articles", err)
	} else {
		batch, err := s.orchestrator.ScoreBatch(ctx, ticker, articles)
		if batch != nil {
			result.Scored = batch.Scored
			result.Failed = batch.Failed
			result.Deferred = batch.Deferred
		}
		s.collect(ctx, result, "score", err)
	}

	combined, err := s.aggregator.Aggregate(ctx, ticker)
	result.CombinedDates = combined
	s.collect(ctx, result, "aggregate", err)

	resolved, err := s.correlator.ResolveHorizons(ctx, ticker)
	result.ResolvedHorizons = resolved
	s.collect(ctx, result, "horizons", err)

	if task.Notify {
		s.collect(ctx, result, "notify", s.notify(ctx, ticker, since))
	}

	s.log.InfoContext(ctx, "Ticker sync finished",
		logger.IntField("prices_stored", result.PricesStored),
		logger.IntField("articles_stored", result.ArticlesStored),
		logger.IntField("scored", result.Scored),
		logger.IntField("failed", result.Failed),
		logger.IntField("deferred", result.Deferred),
		logger.IntField("combined_dates", result.CombinedDates),
		logger.IntField("resolved_horizons", result.ResolvedHorizons),
	)

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("sync of %s finished with %d errors: %s", ticker, len(result.Errors), strings.Join(result.Errors, "; "))
	}
	return result, nil
}

// ResolveHorizons refreshes prices and back-fills horizons without touching news.
func (s *syncService) ResolveHorizons(ctx context.Context, ticker string) (*dto.SyncResult, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	ctx = logger.WithTicker(ctx, ticker)
	result := &dto.SyncResult{Ticker: ticker}

	stored, err := s.syncPrices(ctx, ticker, s.now())
	result.PricesStored = stored
	s.collect(ctx, result, "prices", err)

	resolved, err := s.correlator.ResolveHorizons(ctx, ticker)
	result.ResolvedHorizons = resolved
	s.collect(ctx, result, "horizons", err)

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("horizon backfill of %s finished with %d errors: %s", ticker, len(result.Errors), strings.Join(result.Errors, "; "))
	}
	return result, nil
}

// syncPrices fetches from the day after the latest stored price, or the initial history window for a new ticker.
func (s *syncService) syncPrices(ctx context.Context, ticker string, today time.Time) (int, error) {
	latest, err := s.priceRepo.LatestDate(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest price date: %w", err)
	}

	start := utils.AddDays(today, -s.cfg.Tiingo.InitialHistoryDays)
	if latest != nil {
		start = utils.AddDays(utils.DateOnly(*latest), 1)
	}
	if start.After(today) {
		return 0, nil
	}

	prices, err := s.priceProvider.FetchPrices(ctx, ticker, start)
	if err != nil {
		return 0, err
	}
	stored, err := s.priceRepo.CreateIgnoreConflict(ctx, prices)
	if err != nil {
		return 0, fmt.Errorf("failed to store prices: %w", err)
	}
	return int(stored), nil
}

func (s *syncService) syncNews(ctx context.Context, ticker string, since time.Time) (int, error) {
	articles, err := s.newsProvider.FetchNews(ctx, ticker, since)
	if err != nil {
		return 0, err
	}
	stored, err := s.newsRepo.CreateIgnoreConflict(ctx, articles)
	if err != nil {
		return 0, fmt.Errorf("failed to store articles: %w", err)
	}
	return int(stored), nil
}

func (s *syncService) notify(ctx context.Context, ticker string, since time.Time) error {
	if s.notifier == nil {
		return nil
	}
	rows, err := s.combinedRepo.FindSince(ctx, ticker, since)
	if err != nil {
		return fmt.Errorf("failed to load combined sentiment: %w", err)
	}

	digest := make([]dto.DailySentimentDigest, 0, len(rows))
	for _, r := range rows {
		digest = append(digest, digestOf(r))
	}
	for _, msg := range telegram.FormatSentimentDigest(ticker, digest) {
		if err := s.notifier.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send digest: %w", err)
		}
	}
	return nil
}

func (s *syncService) collect(ctx context.Context, result *dto.SyncResult, step string, err error) {
	if err == nil {
		return
	}
	s.log.ErrorContext(ctx, "Sync step failed", logger.StringField("step", step), logger.ErrorField(err))
	result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", step, err))
}

func digestOf(c entity.CombinedDailySentiment) dto.DailySentimentDigest {
	return dto.DailySentimentDigest{
		Date:           c.Date,
		Label:          c.AggregateLabel,
		Confidence:     c.AggregateConfidence,
		ArticleCount:   c.ArticleCount,
		PositiveWords:  c.PositiveWordTotal,
		NegativeWords:  c.NegativeWordTotal,
		NextDayChange:  c.NextDayChange,
		TwoWeekChange:  c.TwoWeekChange,
		OneMonthChange: c.OneMonthChange,
	}
}
