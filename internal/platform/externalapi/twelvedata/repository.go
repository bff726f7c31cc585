package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/usecase"
	infrahttp "quant_backend/internal/platform/http"
	"quant_backend/internal/platform/externalapi/twelvedata/dto"
	"quant_backend/internal/shared/apperr"

	"github.com/volatiletech/null"
)

// Source is the provider name reported in errors and logs.
const Source = "twelvedata"

// maxOutputSize はAPIが1リクエストで返す最大件数です。
const maxOutputSize = 5000

// TwelveDataMarket はTwelve Data外部APIから米国株の日足を取得するMarketProvider実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketがMarketProviderを実装していることをコンパイル時に検証します。
var _ usecase.MarketProvider = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// FetchHistory はTwelve Data APIから [start, end] の日足を取得し、日付の昇順で返します。
// APIは新しい順に返すため並べ替えます。売買代金は終値×出来高で算出し、回転率は空のままです。
func (t *TwelveDataMarket) FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	start, end = entity.NormalizeDate(start), entity.NormalizeDate(end)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("start_date", start.Format(time.DateOnly))
	// end_date は排他的に扱われるため1日進める
	q.Set("end_date", end.AddDate(0, 0, 1).Format(time.DateOnly))
	q.Set("outputsize", strconv.Itoa(maxOutputSize))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: err}
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if err := infrahttp.CheckStatus(Source, res); err != nil {
		return nil, err
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("decode: %w", err)}
	}
	if body.Status == "error" {
		// APIはHTTP 200のままペイロードでエラーを返すことがある
		if body.Code == http.StatusTooManyRequests {
			return nil, &apperr.RateLimitError{Source: Source, RetryAfter: infrahttp.RetryAfter(res.Header, time.Now()), Err: fmt.Errorf("%s", body.Message)}
		}
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("code %d: %s", body.Code, body.Message)}
	}
	if len(body.Values) == 0 {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("no data for %s", symbol)}
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := toCandle(symbol, v)
		if err != nil {
			return nil, err
		}
		if c.Date.Before(start) || c.Date.After(end) {
			continue
		}
		candles = append(candles, c)
	}

	slices.SortFunc(candles, func(a, b entity.Candle) int { return a.Date.Compare(b.Date) })
	// 同じ日付が2本あると一括upsertが失敗するため、ここで弾く
	if err := entity.ValidateOrder(candles); err != nil {
		return nil, &apperr.DataIntegrityError{Symbol: symbol, Field: "datetime", Err: err}
	}
	return candles, nil
}

// toCandle converts one string-encoded bar. Any missing or unparseable
// OHLCV field is reported with the bar's date.
func toCandle(symbol string, v dto.TimeSeriesValue) (entity.Candle, error) {
	// タイムスタンプをパース
	tm, err := parseDatetime(v.Datetime)
	if err != nil {
		return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Field: "datetime", Err: fmt.Errorf("parse time %q: %w", v.Datetime, err)}
	}
	c := entity.Candle{Symbol: symbol, Date: entity.NormalizeDate(tm)}

	var vol float64
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", v.Open, &c.Open},
		{"high", v.High, &c.High},
		{"low", v.Low, &c.Low},
		{"close", v.Close, &c.Close},
		{"volume", v.Volume, &vol},
	} {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Date: c.Date, Field: f.name, Err: errMissing}
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Date: c.Date, Field: f.name, Err: fmt.Errorf("parse %s %q: %w", f.name, raw, err)}
		}
		*f.dst = x
	}

	c.Volume = int64(math.Round(vol))
	c.Amount = null.Float64From(c.Close * float64(c.Volume))
	return c, nil
}

var errMissing = errors.New("missing")

func parseDatetime(s string) (time.Time, error) {
	tm, err := time.Parse(time.DateTime, s)
	if err == nil {
		return tm, nil
	}
	return time.Parse(time.DateOnly, s)
}
