package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/transport/handler"
	"quant_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null"
)

// mockCandlesUsecase はCandlesUsecaseインターフェースのモック実装です。
type mockCandlesUsecase struct {
	GetCandlesFunc func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
}

func (m *mockCandlesUsecase) GetCandles(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	return m.GetCandlesFunc(ctx, symbol, start, end)
}

// TestCandlesHandler_GetCandlesHandler はGetCandlesHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestCandlesHandler_GetCandlesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetCandles func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: range specified",
			url:  "/candles/510300?start=2024-01-01&end=2024-03-01",
			mockGetCandles: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				assert.Equal(t, "510300", symbol)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
				assert.Equal(t, day, end)
				return []entity.Candle{
					{Symbol: "510300", Date: day, Open: 3.5, High: 3.6, Low: 3.4, Close: 3.55, Volume: 1200,
						Amount: null.Float64From(425000), Turnover: null.Float64From(1.25)},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"date":"2024-03-01","open":3.5,"high":3.6,"low":3.4,"close":3.55,"volume":1200,"amount":425000,"turnover":1.25}]`,
		},
		{
			name: "success: defaults are left to the usecase",
			url:  "/candles/AAPL",
			mockGetCandles: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				assert.True(t, start.IsZero())
				assert.True(t, end.IsZero())
				return []entity.Candle{{Symbol: "AAPL", Date: day, Open: 1, High: 2, Low: 1, Close: 2, Volume: 5}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"date":"2024-03-01","open":1,"high":2,"low":1,"close":2,"volume":5,"amount":null,"turnover":null}]`,
		},
		{
			name: "error: malformed date",
			url:  "/candles/AAPL?start=01/02/2024",
			mockGetCandles: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				t.Fatal("usecase must not be called")
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid configuration: start must be YYYY-MM-DD, got \"01/02/2024\""}`,
		},
		{
			name: "error: inverted range",
			url:  "/candles/AAPL?start=2024-03-01&end=2024-01-01",
			mockGetCandles: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				return nil, apperr.Configf("start date 2024-03-01 is after end date 2024-01-01")
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid configuration: start date 2024-03-01 is after end date 2024-01-01"}`,
		},
		{
			name: "error: usecase returns error",
			url:  "/candles/9999",
			mockGetCandles: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				return nil, errors.New("internal server error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewCandlesHandler(&mockCandlesUsecase{GetCandlesFunc: tt.mockGetCandles})

			router := gin.New()
			router.GET("/candles/:symbol", h.GetCandlesHandler)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
