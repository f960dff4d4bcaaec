package service

import (
	"context"
	"fmt"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/sentiment"
)

// Deduplicator decides whether an article's content still needs scoring for a ticker.
type Deduplicator struct {
	wordCountRepo repository.WordCountRepository
}

func NewDeduplicator(wordCountRepo repository.WordCountRepository) *Deduplicator {
	return &Deduplicator{wordCountRepo: wordCountRepo}
}

// ShouldScore hashes the normalized text and reports skip=true when a scored record already exists.
// A previous Fail is always retried. Empty text returns EmptyContentHash, skip=true and ErrEmptyArticle.
func (d *Deduplicator) ShouldScore(ctx context.Context, ticker, text string) (hash string, skip bool, err error) {
	hash, empty := sentiment.ContentHash(text)
	if empty {
		return hash, true, ErrEmptyArticle
	}

	existing, err := d.wordCountRepo.FindByHash(ctx, ticker, hash)
	if err != nil {
		return hash, false, fmt.Errorf("failed to look up word count record: %w", err)
	}
	if existing == nil || existing.SentimentLabel == entity.SentimentFail {
		return hash, false, nil
	}
	return hash, true, nil
}
