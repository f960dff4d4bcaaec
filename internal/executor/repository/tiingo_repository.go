package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// PriceProvider returns daily prices for a ticker, oldest first, from start (inclusive).
type PriceProvider interface {
	FetchPrices(ctx context.Context, ticker string, start time.Time) ([]entity.PricePoint, error)
}

type tiingoRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewTiingoRepository creates a PriceProvider backed by the Tiingo end-of-day API.
func NewTiingoRepository(cfg *config.Config, log *logger.Logger) PriceProvider {
	return &tiingoRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: newRequestLimiter(cfg.Tiingo.MaxRequestPerMinute),
	}
}

func (r *tiingoRepository) FetchPrices(ctx context.Context, ticker string, start time.Time) ([]entity.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	query := url.Values{}
	query.Set("startDate", utils.FormatDate(start))
	query.Set("token", r.cfg.Tiingo.Token)
	apiURL := fmt.Sprintf("%s/tiingo/daily/%s/prices?%s",
		strings.TrimRight(r.cfg.Tiingo.BaseURL, "/"), url.PathEscape(strings.ToLower(ticker)), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tiingo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Tiingo API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Tiingo API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Tiingo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.TiingoError
		_ = json.Unmarshal(body, &apiErr)
		r.log.ErrorContext(ctx, "Received non-OK response from Tiingo API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("detail", apiErr.Detail),
		)
		return nil, fmt.Errorf("received non-OK response from Tiingo API: %d - %s", resp.StatusCode, apiErr.Detail)
	}

	var rows []dto.TiingoPrice
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode Tiingo response: %w", err)
	}

	prices := make([]entity.PricePoint, 0, len(rows))
	for _, row := range rows {
		prices = append(prices, entity.PricePoint{
			Ticker: ticker,
			Date:   utils.DateOnly(row.Date.UTC()),
			Close:  roundUpCents(row.Close),
			High:   roundUpCents(row.High),
			Low:    roundUpCents(row.Low),
			Open:   roundUpCents(row.Open),
			Volume: row.Volume,
		})
	}

	r.log.DebugContext(ctx, "Fetched prices from Tiingo", logger.IntField("count", len(prices)))
	return prices, nil
}

func roundUpCents(v float64) float64 {
	return decimal.NewFromFloat(v).RoundUp(2).InexactFloat64()
}
