package repository

import (
	"time"

	"golang-stock-sentiment/internal/executor/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Sentiment: config.Sentiment{
			ClassifierTimeout: 5 * time.Second,
		},
		Gemini: config.Gemini{
			Model: "gemini-test",
		},
		News: config.News{
			MinBodyLength: 80,
			FetchTimeout:  5 * time.Second,
			ContentCache:  time.Minute,
			MaxFetchBytes: 1 << 20,
			UserAgent:     "test-agent",
			FetchFullBody: true,
			Polygon: config.Polygon{
				APIKey:    "polygon-key",
				PageLimit: 2,
				MaxPages:  5,
			},
		},
		Tiingo: config.Tiingo{
			Token: "tiingo-token",
		},
	}
}
