package http

import (
	"errors"
	"net/http"

	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/internal/scheduler/service"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidTicker),
		errors.Is(err, service.ErrInvalidCron),
		errors.Is(err, service.ErrInvalidTaskType),
		errors.Is(err, service.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTickerExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
