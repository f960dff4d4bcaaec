package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
)

type finbertRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewFinbertRepository creates a classifier backed by the FinBERT HTTP service.
func NewFinbertRepository(cfg *config.Config, log *logger.Logger) SentimentClassifier {
	return &finbertRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Sentiment.ClassifierTimeout,
		},
		requestLimiter: newRequestLimiter(cfg.Classifier.MaxRequestPerMinute),
	}
}

func (r *finbertRepository) Classify(ctx context.Context, hash string, sentences []string) (*dto.ClassificationResult, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(dto.ClassifierRequest{Text: sentences, Hash: hash})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classifier payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Classifier.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to send request to classifier", logger.ErrorField(err), logger.StringField("hash", hash))
		return nil, fmt.Errorf("failed to send request to classifier: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.WarnContext(ctx, "Received non-OK response from classifier",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("hash", hash),
		)
		return nil, fmt.Errorf("received non-OK response from classifier: %d - %s", resp.StatusCode, string(body))
	}

	var votes dto.ClassifierResponse
	if err := json.Unmarshal(body, &votes); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if votes.Hash != "" && votes.Hash != hash {
		return nil, fmt.Errorf("classifier answered for hash %s, expected %s", votes.Hash, hash)
	}

	r.log.DebugContext(ctx, "Classifier response",
		logger.StringField("hash", hash),
		logger.IntField("positive", votes.Positive.Count),
		logger.IntField("neutral", votes.Neutral.Count),
		logger.IntField("negative", votes.Negative.Count),
	)

	return &dto.ClassificationResult{Votes: votes, Raw: body}, nil
}

func newRequestLimiter(maxRequestPerMinute int) *rate.Limiter {
	if maxRequestPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)
	return rate.NewLimiter(rate.Every(secondsPerRequest), 1)
}
