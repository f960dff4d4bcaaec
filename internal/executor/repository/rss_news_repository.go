package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/mmcdole/gofeed"
)

type rssNewsRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewRSSNewsRepository creates a NewsProvider reading a per-ticker RSS feed.
func NewRSSNewsRepository(cfg *config.Config, log *logger.Logger) NewsProvider {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.News.UserAgent
	parser.Client = &http.Client{Timeout: cfg.News.FetchTimeout}

	return &rssNewsRepository{
		cfg:    cfg,
		log:    log,
		parser: parser,
	}
}

func (r *rssNewsRepository) FetchNews(ctx context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error) {
	feedURL := fmt.Sprintf(r.cfg.News.RSS.FeedURLTemplate, ticker)

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to fetch RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]entity.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		} else {
			continue
		}

		date := utils.MarketDate(publishedAt)
		if date.Before(since) {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		source := feed.Title
		if item.Author != nil && item.Author.Name != "" {
			source = item.Author.Name
		}

		articles = append(articles, entity.NewsArticle{
			Ticker:        ticker,
			PublishedDate: date,
			SourceURL:     strings.TrimSpace(item.Link),
			Title:         utils.SafeText(item.Title),
			BodyText:      htmlToText(summary),
			Source:        source,
			Tickers:       pq.StringArray{ticker},
		})
	}

	r.log.DebugContext(ctx, "Fetched RSS news", logger.IntField("count", len(articles)), logger.StringField("url", feedURL))
	return articles, nil
}

// htmlToText flattens an HTML fragment to plain text. Input that is not HTML comes back cleaned.
func htmlToText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return utils.SafeText(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return utils.SafeText(fragment)
	}
	doc.Find("script, style, noscript").Remove()
	return utils.SafeText(doc.Text())
}
