package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quant_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	jan4 = time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
)

func newTestMarket(t *testing.T, handler http.HandlerFunc) *EastmoneyMarket {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEastmoneyMarket(Config{BaseURL: server.URL, Adjust: "1"}, server.Client())
}

func klinePayload(rows ...string) string {
	body := `{"rc":0,"rt":17,"svr":181216,"lt":1,"full":0,"data":{"code":"510300","market":1,"name":"沪深300ETF","decimal":3,"dktotal":3000,"klines":[`
	for i, r := range rows {
		if i > 0 {
			body += ","
		}
		body += `"` + r + `"`
	}
	return body + `]}}`
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestSecID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"510300": "1.510300",
		"600519": "1.600519",
		"159915": "0.159915",
		"000001": "0.000001",
		"300750": "0.300750",
	}
	for code, want := range tests {
		assert.Equal(t, want, SecID(code), code)
	}
}

func TestEastmoneyMarket_FetchHistory_Success(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/qt/stock/kline/get", r.URL.Path)
		assert.Equal(t, "1.510300", q.Get("secid"))
		assert.Equal(t, "101", q.Get("klt"))
		assert.Equal(t, "1", q.Get("fqt"))
		assert.Equal(t, "20240102", q.Get("beg"))
		assert.Equal(t, "20240104", q.Get("end"))

		respond(klinePayload(
			"2023-12-29,3.400,3.420,3.430,3.390,900000,307800000.00,1.18,0.59,0.020,0.40",
			"2024-01-02,3.420,3.390,3.440,3.380,1234567,418500000.00,1.75,-0.88,-0.030,0.55",
			"2024-01-03,3.390,3.400,3.410,3.370,1100000,374000000.00,1.18,0.29,0.010,0.49%",
			"2024-01-04,3.400,3.350,3.400,3.340,1500000,502500000.00,1.76,-1.47,-0.050,-",
		))(w, r)
	})

	candles, err := market.FetchHistory(context.Background(), "510300", jan2, jan4)
	require.NoError(t, err)
	require.Len(t, candles, 3, "rows before start are filtered")

	first := candles[0]
	assert.Equal(t, jan2, first.Date)
	assert.Equal(t, "510300", first.Symbol)
	// positional columns are date,open,close,high,low
	assert.Equal(t, 3.42, first.Open)
	assert.Equal(t, 3.39, first.Close)
	assert.Equal(t, 3.44, first.High)
	assert.Equal(t, 3.38, first.Low)
	assert.Equal(t, int64(1234567), first.Volume)
	assert.InDelta(t, 418500000.0, first.Amount.Float64, 1e-6)
	assert.InDelta(t, 0.55, first.Turnover.Float64, 1e-12)

	assert.InDelta(t, 0.49, candles[1].Turnover.Float64, 1e-12, "trailing percent sign is tolerated")
	assert.False(t, candles[2].Turnover.Valid, "a dash means no turnover")
}

func TestEastmoneyMarket_FetchHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantKind  error
		wantField string
		wantDate  time.Time
	}{
		{
			name: "throttled",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "5")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantKind: apperr.ErrRateLimit,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantKind: apperr.ErrFetch,
		},
		{
			name:     "non-zero rc",
			handler:  respond(`{"rc":102,"data":null}`),
			wantKind: apperr.ErrFetch,
		},
		{
			name:     "null data",
			handler:  respond(`{"rc":0,"data":null}`),
			wantKind: apperr.ErrFetch,
		},
		{
			name:     "empty klines",
			handler:  respond(klinePayload()),
			wantKind: apperr.ErrFetch,
		},
		{
			name:     "not json",
			handler:  respond(`<html>blocked</html>`),
			wantKind: apperr.ErrFetch,
		},
		{
			name:      "missing close",
			handler:   respond(klinePayload("2024-01-03,3.390,,3.410,3.370,1100000,374000000.00,1.18,0.29,0.010,0.49")),
			wantKind:  apperr.ErrDataIntegrity,
			wantField: "close",
			wantDate:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "truncated row",
			handler:   respond(klinePayload("2024-01-03,3.390,3.400,3.410")),
			wantKind:  apperr.ErrDataIntegrity,
			wantField: "low",
			wantDate:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "bad volume",
			handler:   respond(klinePayload("2024-01-03,3.390,3.400,3.410,3.370,lots,374000000.00")),
			wantKind:  apperr.ErrDataIntegrity,
			wantField: "volume",
			wantDate:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "bad date",
			handler:   respond(klinePayload("20240103,3.390,3.400,3.410,3.370,1,1")),
			wantKind:  apperr.ErrDataIntegrity,
			wantField: "date",
		},
		{
			name: "duplicate dates",
			handler: respond(klinePayload(
				"2024-01-03,3.390,3.400,3.410,3.370,1100000,374000000.00",
				"2024-01-03,3.390,3.400,3.410,3.370,1100000,374000000.00",
			)),
			wantKind:  apperr.ErrDataIntegrity,
			wantField: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, tt.handler)

			_, err := market.FetchHistory(context.Background(), "510300", jan2, jan4)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)

			if tt.wantField != "" {
				var die *apperr.DataIntegrityError
				require.ErrorAs(t, err, &die)
				assert.Equal(t, tt.wantField, die.Field)
				assert.Equal(t, tt.wantDate, die.Date)
			}
		})
	}
}

func TestEastmoneyMarket_ConcurrentUse(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, respond(klinePayload(
		"2024-01-02,3.420,3.390,3.440,3.380,1234567,418500000.00,1.75,-0.88,-0.030,0.55",
	)))

	errs := make(chan error, 8)
	for i := 0; i < cap(errs); i++ {
		go func() {
			_, err := market.FetchHistory(context.Background(), "510300", jan2, jan4)
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		assert.NoError(t, <-errs)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("EASTMONEY_BASE_URL", "")
	t.Setenv("EASTMONEY_ADJUST", "")

	cfg := LoadConfig()

	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "1", cfg.Adjust)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}
