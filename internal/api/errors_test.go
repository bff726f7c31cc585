package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quant_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "configuration", err: apperr.Configf("unknown strategy %q", "x"), want: http.StatusBadRequest},
		{name: "not found", err: apperr.NotFoundf("instrument %q", "X"), want: http.StatusNotFound},
		{name: "computation", err: apperr.Computef("no candles"), want: http.StatusUnprocessableEntity},
		{name: "rate limit", err: &apperr.RateLimitError{Source: "twelvedata"}, want: http.StatusTooManyRequests},
		{name: "fetch", err: &apperr.FetchError{Source: "eastmoney"}, want: http.StatusBadGateway},
		{name: "data integrity", err: &apperr.DataIntegrityError{Field: "open"}, want: http.StatusBadGateway},
		{name: "wrapped kind", err: fmt.Errorf("sync AAPL: %w", &apperr.FetchError{Source: "twelvedata"}), want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		RespondError(c, apperr.Configf("bad window %d", 0))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid configuration: bad window 0"}`, w.Body.String())
}
