package http

import (
	"net/http"

	"golang-stock-sentiment/internal/scheduler/dto"
	"golang-stock-sentiment/internal/scheduler/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TickerHandler handles HTTP requests for the watch list and manual syncs.
type TickerHandler struct {
	tickerService service.TickerService
	logger        *logger.Logger
}

// NewTickerHandler creates a new TickerHandler.
func NewTickerHandler(tickerService service.TickerService, logger *logger.Logger) *TickerHandler {
	return &TickerHandler{tickerService: tickerService, logger: logger}
}

// RegisterRoutes registers the ticker routes to the Echo group.
func (h *TickerHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTicker)
	g.GET("", h.GetAllTickers)
	g.DELETE("/:ticker", h.DeleteTicker)
	g.POST("/:ticker/sync", h.TriggerSync)
}

// CreateTicker godoc
// @Summary Watch a ticker
// @Description Add a ticker to the watch list. The first sync runs on the next scheduler poll.
// @Tags tickers
// @Accept  json
// @Produce  json
// @Param   ticker  body    dto.CreateTickerRequest   true    "Ticker to watch"
// @Success 201 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [post]
func (h *TickerHandler) CreateTicker(c echo.Context) error {
	var req dto.CreateTickerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.tickerService.CreateTicker(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetAllTickers godoc
// @Summary List watched tickers
// @Tags tickers
// @Produce  json
// @Success 200 {array} dto.TickerResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [get]
func (h *TickerHandler) GetAllTickers(c echo.Context) error {
	tickers, err := h.tickerService.GetAllTickers(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all tickers", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get tickers"})
	}
	return c.JSON(http.StatusOK, tickers)
}

// DeleteTicker godoc
// @Summary Stop watching a ticker
// @Description Remove a ticker and its sync history. Stored sentiment data is kept.
// @Tags tickers
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{ticker} [delete]
func (h *TickerHandler) DeleteTicker(c echo.Context) error {
	if err := h.tickerService.DeleteTicker(c.Request().Context(), c.Param("ticker")); err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// TriggerSync godoc
// @Summary Sync a ticker now
// @Description Queue a ticker_sync or horizon_backfill task for the ticker
// @Tags tickers
// @Accept  json
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Param   request body    dto.TriggerSyncRequest false "Overrides"
// @Success 202 {object} dto.ExecutionHistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{ticker}/sync [post]
func (h *TickerHandler) TriggerSync(c echo.Context) error {
	var req dto.TriggerSyncRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
		}
	}

	resp, err := h.tickerService.TriggerSync(c.Request().Context(), c.Param("ticker"), &req)
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusAccepted, resp)
}
