// Package api holds the wire types shared by every HTTP handler and the
// mapping from domain error kinds to HTTP status codes.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"quant_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error kind to the HTTP status reported to clients.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrComputation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, apperr.ErrFetch), errors.Is(err, apperr.ErrDataIntegrity):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse with the mapped status.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "status", status, "error", err)
	} else {
		slog.Warn("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
