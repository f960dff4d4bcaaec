package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/scheduler/dto"
	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// SentimentQueryService serves stored word counts and combined daily sentiment.
type SentimentQueryService interface {
	GetWordCounts(ctx context.Context, ticker string, query dto.SentimentQuery) ([]dto.WordCountResponse, error)
	GetDailySentiment(ctx context.Context, ticker string, query dto.SentimentQuery) ([]dto.DailySentimentResponse, error)
}

// NewSentimentQueryService creates a new SentimentQueryService. defaultDays is the range used when "from" is omitted.
func NewSentimentQueryService(sentimentRepo repository.SentimentRepository, log *logger.Logger, defaultDays int) SentimentQueryService {
	return &sentimentQueryService{
		sentimentRepo: sentimentRepo,
		logger:        log,
		defaultDays:   defaultDays,
		today:         utils.Today,
	}
}

type sentimentQueryService struct {
	sentimentRepo repository.SentimentRepository
	logger        *logger.Logger
	defaultDays   int
	today         func() time.Time
}

func (s *sentimentQueryService) GetWordCounts(ctx context.Context, raw string, query dto.SentimentQuery) ([]dto.WordCountResponse, error) {
	ticker, from, to, err := s.parse(raw, query)
	if err != nil {
		return nil, err
	}
	records, err := s.sentimentRepo.FindWordCounts(ctx, ticker, from, to)
	if err != nil {
		s.logger.Error("Failed to get word counts", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	out := make([]dto.WordCountResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.WordCountResponse{
			Date:                r.Date,
			ContentHash:         r.ContentHash,
			SentimentLabel:      string(r.SentimentLabel),
			SentimentConfidence: r.SentimentConfidence,
			PositiveWordCount:   r.PositiveWordCount,
			NegativeWordCount:   r.NegativeWordCount,
			NextDayChange:       r.NextDayChange,
			TwoWeekChange:       r.TwoWeekChange,
			OneMonthChange:      r.OneMonthChange,
		})
	}
	return out, nil
}

func (s *sentimentQueryService) GetDailySentiment(ctx context.Context, raw string, query dto.SentimentQuery) ([]dto.DailySentimentResponse, error) {
	ticker, from, to, err := s.parse(raw, query)
	if err != nil {
		return nil, err
	}
	rows, err := s.sentimentRepo.FindCombined(ctx, ticker, from, to)
	if err != nil {
		s.logger.Error("Failed to get daily sentiment", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	out := make([]dto.DailySentimentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToDailySentimentResponse(r))
	}
	return out, nil
}

// parse resolves the inclusive date range. "to" defaults to today and "from" to defaultDays before "to".
func (s *sentimentQueryService) parse(raw string, query dto.SentimentQuery) (string, time.Time, time.Time, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	to := s.today()
	if query.To != "" {
		if to, err = utils.ParseDate(query.To); err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: to: %v", ErrInvalidDateRange, err)
		}
	}
	from := utils.AddDays(to, -s.defaultDays)
	if query.From != "" {
		if from, err = utils.ParseDate(query.From); err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: from: %v", ErrInvalidDateRange, err)
		}
	}
	if from.After(to) {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: from is after to", ErrInvalidDateRange)
	}
	return ticker, from, to, nil
}

func mapToDailySentimentResponse(r entity.CombinedDailySentiment) dto.DailySentimentResponse {
	return dto.DailySentimentResponse{
		Date:                r.Date,
		AggregateLabel:      string(r.AggregateLabel),
		AggregateConfidence: r.AggregateConfidence,
		ArticleCount:        r.ArticleCount,
		PositiveWordTotal:   r.PositiveWordTotal,
		NegativeWordTotal:   r.NegativeWordTotal,
		NextDayChange:       r.NextDayChange,
		TwoWeekChange:       r.TwoWeekChange,
		OneMonthChange:      r.OneMonthChange,
		LastUpdated:         r.LastUpdated,
	}
}
