package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quant_backend/internal/shared/apperr"
)

// CheckStatus classifies a non-success response of an external data source.
// 429 becomes an apperr.RateLimitError carrying the Retry-After hint, any
// other status of 400 or above becomes an apperr.FetchError.
func CheckStatus(source string, res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return &apperr.RateLimitError{
			Source:     source,
			RetryAfter: RetryAfter(res.Header, time.Now()),
			Err:        fmt.Errorf("http %d", res.StatusCode),
		}
	case res.StatusCode >= 400:
		return &apperr.FetchError{Source: source, Err: fmt.Errorf("http %d", res.StatusCode)}
	default:
		return nil
	}
}

// RetryAfter parses a Retry-After header given either in seconds or as an
// HTTP date. It returns 0 when the header is absent or unparseable.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
