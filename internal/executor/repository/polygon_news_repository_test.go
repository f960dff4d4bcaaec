package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-sentiment/pkg/logger"
)

func TestPolygonNewsRepository_FollowsNextURL(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/reference/news", r.URL.Path)
		assert.Equal(t, "polygon-key", r.URL.Query().Get("apiKey"))

		if r.URL.Query().Get("cursor") == "" {
			assert.Equal(t, "AAPL", r.URL.Query().Get("ticker"))
			assert.Equal(t, "2024-03-01", r.URL.Query().Get("published_utc.gte"))
			fmt.Fprintf(w, `{"status":"OK","count":1,"next_url":"%s/v2/reference/news?cursor=abc","results":[
				{"id":"1","publisher":{"name":"Reuters"},"title":"Apple beats","published_utc":"2024-03-01T15:04:05Z",
				 "article_url":"https://example.com/a","tickers":["AAPL"],"description":"Apple beat estimates."}
			]}`, server.URL)
			return
		}

		_, _ = w.Write([]byte(`{"status":"OK","count":1,"results":[
			{"id":"2","publisher":{"name":"Bloomberg"},"title":"Apple slips","published_utc":"2024-03-02T02:00:00Z",
			 "article_url":"https://example.com/b","tickers":["AAPL","MSFT"],"description":"Shares slipped."},
			{"id":"3","publisher":{"name":"Nobody"},"title":"No URL","published_utc":"2024-03-02T02:00:00Z"}
		]}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.News.Polygon.BaseURL = server.URL
	repo := NewPolygonNewsRepository(cfg, logger.NewNop())

	articles, err := repo.FetchNews(context.Background(), "AAPL", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "https://example.com/a", articles[0].SourceURL)
	assert.Equal(t, "Reuters", articles[0].Source)
	assert.Equal(t, "Apple beat estimates.", articles[0].BodyText)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), articles[0].PublishedDate)

	// 02:00 UTC is still the previous evening in New York.
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), articles[1].PublishedDate)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, articles[1].Tickers)
}

func TestPolygonNewsRepository_FirstPageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.News.Polygon.BaseURL = server.URL
	repo := NewPolygonNewsRepository(cfg, logger.NewNop())

	_, err := repo.FetchNews(context.Background(), "AAPL", time.Now())
	assert.Error(t, err)
}
