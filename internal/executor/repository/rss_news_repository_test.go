package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-sentiment/pkg/logger"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Ticker headlines</title>
  <item>
    <title>Apple posts record quarter</title>
    <link>https://example.com/record</link>
    <description><![CDATA[<p>Apple reported <b>record</b> revenue.</p>]]></description>
    <pubDate>Tue, 05 Mar 2024 14:30:00 GMT</pubDate>
  </item>
  <item>
    <title>Old story</title>
    <link>https://example.com/old</link>
    <description>Too old to matter.</description>
    <pubDate>Mon, 01 Jan 2024 14:30:00 GMT</pubDate>
  </item>
  <item>
    <title>Undated</title>
    <link>https://example.com/undated</link>
  </item>
</channel>
</rss>`

func TestRSSNewsRepository_FetchNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.News.RSS.FeedURLTemplate = server.URL + "/rss?s=%s"
	repo := NewRSSNewsRepository(cfg, logger.NewNop())

	articles, err := repo.FetchNews(context.Background(), "AAPL", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "Apple posts record quarter", articles[0].Title)
	assert.Equal(t, "Apple reported record revenue.", articles[0].BodyText)
	assert.Equal(t, "https://example.com/record", articles[0].SourceURL)
	assert.Equal(t, "Ticker headlines", articles[0].Source)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), articles[0].PublishedDate)
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "plain text", htmlToText("  plain   text "))
	assert.Equal(t, "Hello world", htmlToText("<div>Hello <script>x()</script><i>world</i></div>"))
}
