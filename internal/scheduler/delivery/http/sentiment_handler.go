package http

import (
	"net/http"

	"golang-stock-sentiment/internal/scheduler/dto"
	"golang-stock-sentiment/internal/scheduler/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SentimentHandler serves the stored sentiment of a ticker.
type SentimentHandler struct {
	queryService service.SentimentQueryService
	logger       *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(queryService service.SentimentQueryService, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{queryService: queryService, logger: logger}
}

// RegisterRoutes registers the read routes under the tickers group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker/word-counts", h.GetWordCounts)
	g.GET("/:ticker/sentiment", h.GetDailySentiment)
}

// GetWordCounts godoc
// @Summary Scored articles of a ticker
// @Tags sentiment
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Param   from    query   string false   "First date (YYYY-MM-DD)"
// @Param   to      query   string false   "Last date (YYYY-MM-DD)"
// @Success 200 {array} dto.WordCountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{ticker}/word-counts [get]
func (h *SentimentHandler) GetWordCounts(c echo.Context) error {
	var query dto.SentimentQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	records, err := h.queryService.GetWordCounts(c.Request().Context(), c.Param("ticker"), query)
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, records)
}

// GetDailySentiment godoc
// @Summary Combined daily sentiment of a ticker
// @Tags sentiment
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Param   from    query   string false   "First date (YYYY-MM-DD)"
// @Param   to      query   string false   "Last date (YYYY-MM-DD)"
// @Success 200 {array} dto.DailySentimentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{ticker}/sentiment [get]
func (h *SentimentHandler) GetDailySentiment(c echo.Context) error {
	var query dto.SentimentQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	rows, err := h.queryService.GetDailySentiment(c.Request().Context(), c.Param("ticker"), query)
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
