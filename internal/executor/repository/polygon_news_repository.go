package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/lib/pq"
	"golang.org/x/time/rate"
)

type polygonNewsRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewPolygonNewsRepository creates a NewsProvider backed by the Polygon reference news API.
func NewPolygonNewsRepository(cfg *config.Config, log *logger.Logger) NewsProvider {
	return &polygonNewsRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: newRequestLimiter(cfg.News.Polygon.MaxRequestPerMinute),
	}
}

func (r *polygonNewsRepository) FetchNews(ctx context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error) {
	polygon := r.cfg.News.Polygon

	query := url.Values{}
	query.Set("ticker", ticker)
	query.Set("published_utc.gte", utils.FormatDate(since))
	query.Set("order", "asc")
	query.Set("limit", strconv.Itoa(polygon.PageLimit))
	query.Set("apiKey", polygon.APIKey)
	nextURL := fmt.Sprintf("%s/v2/reference/news?%s", strings.TrimRight(polygon.BaseURL, "/"), query.Encode())

	var articles []entity.NewsArticle
	for page := 1; nextURL != ""; page++ {
		if polygon.MaxPages > 0 && page > polygon.MaxPages {
			r.log.WarnContext(ctx, "Reached maximum Polygon page limit", logger.IntField("max_pages", polygon.MaxPages))
			break
		}

		resp, err := r.fetchPage(ctx, nextURL)
		if err != nil {
			if len(articles) > 0 {
				r.log.WarnContext(ctx, "Stopping Polygon pagination early", logger.ErrorField(err), logger.IntField("page", page))
				break
			}
			return nil, err
		}
		if resp.Status != "OK" {
			r.log.WarnContext(ctx, "Polygon API returned non-OK status", logger.StringField("status", resp.Status))
			break
		}

		for _, item := range resp.Results {
			if item.ArticleURL == "" {
				continue
			}
			articles = append(articles, entity.NewsArticle{
				Ticker:        ticker,
				PublishedDate: utils.MarketDate(item.PublishedUTC),
				SourceURL:     item.ArticleURL,
				Title:         utils.SafeText(item.Title),
				BodyText:      utils.SafeText(item.Description),
				Source:        item.Publisher.Name,
				Tickers:       pq.StringArray(item.Tickers),
			})
		}

		nextURL = r.withAPIKey(resp.NextURL)
	}

	r.log.DebugContext(ctx, "Fetched Polygon news", logger.IntField("count", len(articles)))
	return articles, nil
}

func (r *polygonNewsRepository) fetchPage(ctx context.Context, pageURL string) (*dto.PolygonNewsResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Polygon request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Polygon API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Polygon API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.log.ErrorContext(ctx, "Received non-OK response from Polygon API", logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from Polygon API: %d - %s", resp.StatusCode, string(body))
	}

	var page dto.PolygonNewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode Polygon response: %w", err)
	}
	return &page, nil
}

// withAPIKey adds the key to a next_url, which Polygon returns without credentials.
func (r *polygonNewsRepository) withAPIKey(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Get("apiKey") == "" {
		q.Set("apiKey", r.cfg.News.Polygon.APIKey)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
