package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ContentGenerator is the part of genai.Models the classifier needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	generator      ContentGenerator
	requestLimiter *rate.Limiter
}

// NewGeminiRepository creates a classifier that prompts Gemini for a FinBERT-shaped answer.
// Pass genaiClient.Models as the generator.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger, generator ContentGenerator) SentimentClassifier {
	return &geminiRepository{
		cfg:            cfg,
		log:            log,
		generator:      generator,
		requestLimiter: newRequestLimiter(cfg.Gemini.MaxRequestPerMinute),
	}
}

func (r *geminiRepository) Classify(ctx context.Context, hash string, sentences []string) (*dto.ClassificationResult, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	prompt := BuildSentimentPrompt(sentences)
	resp, err := r.generator.GenerateContent(ctx, r.cfg.Gemini.Model, []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.log.WarnContext(ctx, "Failed to generate content from Gemini", logger.ErrorField(err), logger.StringField("hash", hash))
		return nil, fmt.Errorf("failed to generate content from Gemini: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	raw := strings.TrimSpace(resp.Text())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "`\n ")
	if raw == "" {
		return nil, fmt.Errorf("no content found in Gemini response")
	}

	var votes dto.ClassifierResponse
	if err := json.Unmarshal([]byte(raw), &votes); err != nil {
		r.log.WarnContext(ctx, "Failed to unmarshal Gemini sentiment response", logger.ErrorField(err), logger.StringField("response", raw))
		return nil, fmt.Errorf("failed to unmarshal sentiment from Gemini response: %w", err)
	}
	votes.Hash = hash

	return &dto.ClassificationResult{Votes: votes, Raw: []byte(raw)}, nil
}
