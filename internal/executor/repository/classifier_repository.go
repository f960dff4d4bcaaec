package repository

import (
	"context"

	"golang-stock-sentiment/internal/executor/dto"
)

// SentimentClassifier classifies the sentences of one article. Any returned error means the article
// could not be scored this time.
type SentimentClassifier interface {
	Classify(ctx context.Context, hash string, sentences []string) (*dto.ClassificationResult, error)
}
