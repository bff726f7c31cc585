package eastmoney

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/usecase"
	infrahttp "quant_backend/internal/platform/http"
	"quant_backend/internal/shared/apperr"

	"github.com/buger/jsonparser"
	"github.com/volatiletech/null"
)

// Source is the provider name reported in errors and logs.
const Source = "eastmoney"

// kline row columns, requested with fields2=f51..f61
const (
	colDate = iota
	colOpen
	colClose
	colHigh
	colLow
	colVolume
	colAmount
	colAmplitude
	colChangePct
	colChange
	colTurnover
)

var errMissing = errors.New("missing")

// EastmoneyMarket はEastmoneyのK線APIからA株・ETFの日足を取得するMarketProvider実装です。
type EastmoneyMarket struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketProvider = (*EastmoneyMarket)(nil)

// NewEastmoneyMarket は指定された設定とHTTPクライアントでEastmoneyMarketの新しいインスタンスを生成します。
func NewEastmoneyMarket(cfg Config, client *http.Client) *EastmoneyMarket {
	return &EastmoneyMarket{cfg: cfg, client: client}
}

// SecID returns the Eastmoney security id of a six-digit code.
// Shanghai listings (5xxxxx funds, 6xxxxx shares) use market 1, everything else market 0.
func SecID(code string) string {
	if strings.HasPrefix(code, "5") || strings.HasPrefix(code, "6") {
		return "1." + code
	}
	return "0." + code
}

// FetchHistory は [start, end] の日足を日付の昇順で返します。
// 出来高はソースの単位（手）のまま保持し、回転率はパーセントで格納します。
func (e *EastmoneyMarket) FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	start, end = entity.NormalizeDate(start), entity.NormalizeDate(end)

	q := url.Values{}
	q.Set("secid", SecID(symbol))
	q.Set("klt", "101") // daily
	q.Set("fqt", e.cfg.Adjust)
	q.Set("fields1", "f1,f2,f3,f4,f5,f6")
	q.Set("fields2", "f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61")
	q.Set("beg", start.Format("20060102"))
	q.Set("end", end.Format("20060102"))

	u := fmt.Sprintf("%s/api/qt/stock/kline/get?%s", e.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: err}
	}
	req.Header.Set("Referer", "https://quote.eastmoney.com/")

	res, err := e.client.Do(req)
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

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: err}
	}
	return parseKlines(symbol, body, start, end)
}

// parseKlines extracts data.klines from a kline payload and keeps the rows
// dated within [start, end].
func parseKlines(symbol string, body []byte, start, end time.Time) ([]entity.Candle, error) {
	rc, err := jsonparser.GetInt(body, "rc")
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("decode: %w", err)}
	}
	if rc != 0 {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("rc %d", rc)}
	}

	_, dataType, _, err := jsonparser.Get(body, "data", "klines")
	if err != nil || dataType != jsonparser.Array {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("no data for %s", symbol)}
	}

	var (
		candles []entity.Candle
		rowErr  error
	)
	_, err = jsonparser.ArrayEach(body, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		if rowErr != nil {
			return
		}
		if dt != jsonparser.String {
			rowErr = &apperr.DataIntegrityError{Symbol: symbol, Field: "kline", Err: fmt.Errorf("unexpected %s", dt)}
			return
		}
		row, err := jsonparser.ParseString(value)
		if err != nil {
			rowErr = &apperr.DataIntegrityError{Symbol: symbol, Field: "kline", Err: err}
			return
		}
		c, err := parseRow(symbol, row)
		if err != nil {
			rowErr = err
			return
		}
		if c.Date.Before(start) || c.Date.After(end) {
			return
		}
		candles = append(candles, c)
	}, "data", "klines")
	if rowErr != nil {
		return nil, rowErr
	}
	if err != nil {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("decode klines: %w", err)}
	}
	if len(candles) == 0 {
		return nil, &apperr.FetchError{Source: Source, Err: fmt.Errorf("no data for %s", symbol)}
	}
	if err := entity.ValidateOrder(candles); err != nil {
		return nil, &apperr.DataIntegrityError{Symbol: symbol, Field: "date", Err: err}
	}
	return candles, nil
}

// parseRow remaps one positional row
// "date,open,close,high,low,volume,amount,amplitude,pct,change,turnover".
func parseRow(symbol, row string) (entity.Candle, error) {
	cols := strings.Split(row, ",")

	raw := func(i int) string {
		if i >= len(cols) {
			return ""
		}
		v := strings.TrimSpace(cols[i])
		if v == "-" {
			return ""
		}
		return v
	}

	d, err := time.Parse(time.DateOnly, raw(colDate))
	if err != nil {
		return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Field: "date", Err: fmt.Errorf("parse date %q: %w", raw(colDate), err)}
	}
	c := entity.Candle{Symbol: symbol, Date: d}

	var vol, amount float64
	for _, f := range []struct {
		name string
		col  int
		dst  *float64
	}{
		{"open", colOpen, &c.Open},
		{"high", colHigh, &c.High},
		{"low", colLow, &c.Low},
		{"close", colClose, &c.Close},
		{"volume", colVolume, &vol},
		{"amount", colAmount, &amount},
	} {
		s := raw(f.col)
		if s == "" {
			if f.col == colAmount {
				continue
			}
			return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Date: d, Field: f.name, Err: errMissing}
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Date: d, Field: f.name, Err: fmt.Errorf("parse %s %q: %w", f.name, s, err)}
		}
		*f.dst = x
		if f.col == colAmount {
			c.Amount = null.Float64From(x)
		}
	}
	c.Volume = int64(math.Round(vol))

	if s := strings.TrimSuffix(raw(colTurnover), "%"); s != "" {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return entity.Candle{}, &apperr.DataIntegrityError{Symbol: symbol, Date: d, Field: "turnover", Err: fmt.Errorf("parse turnover %q: %w", s, err)}
		}
		c.Turnover = null.Float64From(x)
	}
	return c, nil
}
