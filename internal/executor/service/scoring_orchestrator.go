package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/sentiment"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// ScoringOrchestrator classifies and word-counts a batch of articles and stores one record per content hash.
type ScoringOrchestrator struct {
	cfg           config.Sentiment
	log           *logger.Logger
	dedup         *Deduplicator
	contentRepo   repository.ArticleContentRepository
	classifier    repository.SentimentClassifier
	counter       *sentiment.WordCounter
	correlator    *PriceCorrelator
	wordCountRepo repository.WordCountRepository
	now           func() time.Time
}

func NewScoringOrchestrator(
	cfg config.Sentiment,
	log *logger.Logger,
	dedup *Deduplicator,
	contentRepo repository.ArticleContentRepository,
	classifier repository.SentimentClassifier,
	counter *sentiment.WordCounter,
	correlator *PriceCorrelator,
	wordCountRepo repository.WordCountRepository,
) *ScoringOrchestrator {
	return &ScoringOrchestrator{
		cfg:           cfg,
		log:           log,
		dedup:         dedup,
		contentRepo:   contentRepo,
		classifier:    classifier,
		counter:       counter,
		correlator:    correlator,
		wordCountRepo: wordCountRepo,
		now:           utils.Today,
	}
}

type admittedArticle struct {
	article entity.NewsArticle
	hash    string
}

// ScoreBatch scores every article that the Deduplicator does not skip, up to the admission cap.
// Articles past the cap are deferred to the next call. The call returns only after every admitted
// article has been stored, so repeated calls converge.
//
// When the ticker has no articles and no records at all, a single NoNewsData record is stored.
func (o *ScoringOrchestrator) ScoreBatch(ctx context.Context, ticker string, articles []entity.NewsArticle) (*dto.BatchResult, error) {
	result := &dto.BatchResult{}

	if len(articles) == 0 {
		return result, o.storeNoNewsData(ctx, ticker, result)
	}

	admitted := o.admit(ctx, ticker, articles, result)
	if len(admitted) == 0 {
		return result, nil
	}

	maxConcurrent := o.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		records   = make([]*entity.WordCountRecord, len(admitted))
		semaphore = make(chan struct{}, maxConcurrent)
		storeErrs []error
	)

	for i, a := range admitted {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			record := o.score(ctx, ticker, a)
			if err := o.wordCountRepo.Upsert(ctx, record); err != nil {
				o.log.ErrorContext(ctx, "Failed to store word count record", logger.ErrorField(err), logger.StringField("hash", a.hash))
				mu.Lock()
				storeErrs = append(storeErrs, err)
				mu.Unlock()
				return
			}
			records[i] = record
		})
	}
	wg.Wait()

	for _, r := range records {
		if r == nil {
			result.Failed++
			continue
		}
		result.Records = append(result.Records, *r)
		if r.SentimentLabel == entity.SentimentFail {
			result.Failed++
		} else {
			result.Scored++
		}
	}

	o.log.InfoContext(ctx, "Scored article batch",
		logger.IntField("scored", result.Scored),
		logger.IntField("failed", result.Failed),
		logger.IntField("skipped", result.Skipped),
		logger.IntField("deferred", result.Deferred),
	)

	if len(storeErrs) > 0 {
		return result, fmt.Errorf("failed to store %d word count records: %w", len(storeErrs), errors.Join(storeErrs...))
	}
	return result, nil
}

// admit walks the articles in order and picks the distinct hashes to classify in this call.
func (o *ScoringOrchestrator) admit(ctx context.Context, ticker string, articles []entity.NewsArticle, result *dto.BatchResult) []admittedArticle {
	var (
		admitted []admittedArticle
		seen     = make(map[string]bool)
	)

	for _, article := range articles {
		hash, skip, err := o.dedup.ShouldScore(ctx, ticker, article.BodyText)
		switch {
		case errors.Is(err, ErrEmptyArticle):
			result.Skipped++
			continue
		case err != nil:
			o.log.WarnContext(ctx, "Failed to check article, deferring", logger.ErrorField(err), logger.StringField("url", article.SourceURL))
			result.Deferred++
			continue
		case skip || seen[hash]:
			result.Skipped++
			continue
		}

		if o.cfg.AdmissionCap > 0 && len(admitted) >= o.cfg.AdmissionCap {
			result.Deferred++
			continue
		}

		seen[hash] = true
		admitted = append(admitted, admittedArticle{article: article, hash: hash})
	}
	return admitted
}

// score builds the record of one admitted article. A classifier error yields a Fail record.
func (o *ScoringOrchestrator) score(ctx context.Context, ticker string, a admittedArticle) *entity.WordCountRecord {
	record := &entity.WordCountRecord{
		Ticker:         ticker,
		Date:           utils.DateOnly(a.article.PublishedDate),
		ContentHash:    a.hash,
		SentimentLabel: entity.SentimentFail,
	}

	text := a.article.BodyText
	if o.contentRepo != nil {
		text = o.contentRepo.Resolve(ctx, a.article)
	}
	record.BodyText = text

	classifyCtx := ctx
	if o.cfg.ClassifierTimeout > 0 {
		var cancel context.CancelFunc
		classifyCtx, cancel = context.WithTimeout(ctx, o.cfg.ClassifierTimeout)
		defer cancel()
	}

	classified, err := o.classifier.Classify(classifyCtx, a.hash, sentiment.SplitSentences(text))
	if err != nil {
		o.log.WarnContext(ctx, "Article marked as Fail",
			logger.ErrorField(fmt.Errorf("%w: %v", ErrClassification, err)),
			logger.StringField("hash", a.hash),
		)
		return record
	}

	label, confidence := sentiment.ResolveVotes(
		classified.Votes.Positive.Vote(),
		classified.Votes.Neutral.Vote(),
		classified.Votes.Negative.Vote(),
	)
	record.SentimentLabel = label
	record.SentimentConfidence = confidence
	record.ClassifierResponse = classified.Raw
	record.PositiveWordCount, record.NegativeWordCount = o.counter.Count(text)

	if o.correlator != nil {
		changes := o.correlator.ChangesFor(ctx, ticker, record.Date)
		record.NextDayChange = changes.NextDay
		record.TwoWeekChange = changes.TwoWeek
		record.OneMonthChange = changes.OneMonth
	}

	return record
}

func (o *ScoringOrchestrator) storeNoNewsData(ctx context.Context, ticker string, result *dto.BatchResult) error {
	count, err := o.wordCountRepo.CountByTicker(ctx, ticker)
	if err != nil {
		return fmt.Errorf("failed to count word count records: %w", err)
	}
	if count > 0 {
		return nil
	}

	record := &entity.WordCountRecord{
		Ticker:         ticker,
		Date:           o.now(),
		ContentHash:    sentiment.NoNewsDataHash,
		SentimentLabel: entity.SentimentNoNewsData,
	}
	if err := o.wordCountRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to store no news record: %w", err)
	}

	o.log.InfoContext(ctx, "No news for ticker, stored NoNewsData record")
	result.Records = append(result.Records, *record)
	return nil
}
