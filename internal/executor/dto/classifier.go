package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang-stock-sentiment/internal/sentiment"
)

// ClassifierRequest is the payload sent to the FinBERT sentiment service.
type ClassifierRequest struct {
	Text []string `json:"text"`
	Hash string   `json:"hash"`
}

// ClassScore is a [count, score] pair. The service sends both values either as numbers or as strings.
type ClassScore struct {
	Count int
	Score float64
}

// UnmarshalJSON accepts ["3","0.91"], [3,0.91] or any mix of the two.
func (c *ClassScore) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("class score must be an array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("class score must have 2 elements, got %d", len(raw))
	}

	count, err := parseNumber(raw[0])
	if err != nil {
		return fmt.Errorf("invalid class count: %w", err)
	}
	score, err := parseNumber(raw[1])
	if err != nil {
		return fmt.Errorf("invalid class score: %w", err)
	}

	c.Count = int(count)
	c.Score = score
	return nil
}

// MarshalJSON writes the pair back in numeric form.
func (c ClassScore) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{c.Count, c.Score})
}

func parseNumber(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Vote converts the pair into the form used by the label rules.
func (c ClassScore) Vote() sentiment.ClassVote {
	return sentiment.ClassVote{Count: c.Count, Score: c.Score}
}

// ClassifierResponse is the three-class answer of the sentiment service.
type ClassifierResponse struct {
	Positive ClassScore `json:"positive"`
	Neutral  ClassScore `json:"neutral"`
	Negative ClassScore `json:"negative"`
	Hash     string     `json:"hash"`
}

// ClassificationResult is what a classifier hands back to the scoring pipeline.
type ClassificationResult struct {
	Votes ClassifierResponse
	Raw   []byte
}
