// Package apperr defines the error kinds shared by providers, the indicator
// engine, the backtest simulator and the HTTP layer.
//
// Every kind is a sentinel that callers match with errors.Is. The typed
// errors carry extra context (retry hints, offending dates) and can be
// extracted with errors.As.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFetch はデータソースに到達できない、または拒否された場合のエラーです。
	ErrFetch = errors.New("fetch failed")
	// ErrRateLimit はデータソースがスロットリングを通知した場合のエラーです。
	// ErrFetch とは別の種類として扱い、呼び出し側はより長いバックオフを適用します。
	ErrRateLimit = errors.New("rate limited")
	// ErrDataIntegrity はソースの行に必須のOHLCVフィールドが欠けている場合のエラーです。
	ErrDataIntegrity = errors.New("data integrity violation")
	// ErrConfiguration は未知の戦略・市場、または不正なパラメータのエラーです。リトライしません。
	ErrConfiguration = errors.New("invalid configuration")
	// ErrComputation は指標計算やバックテストの数値計算が成立しない場合のエラーです。
	ErrComputation = errors.New("computation failed")
	// ErrNotFound は要求されたリソースが存在しない場合のエラーです。
	ErrNotFound = errors.New("not found")
)

// FetchError reports an unreachable or rejecting data source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Source, ErrFetch)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, ErrFetch, e.Err)
}

func (e *FetchError) Unwrap() []error { return kinds(ErrFetch, e.Err) }

// RateLimitError reports that the source throttled the request.
// RetryAfter is zero when the source did not send a hint.
type RateLimitError struct {
	Source     string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Source, ErrRateLimit)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RateLimitError) Unwrap() []error { return kinds(ErrRateLimit, e.Err) }

// DataIntegrityError identifies the row and field a source got wrong.
type DataIntegrityError struct {
	Symbol string
	Date   time.Time
	Field  string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	date := "unknown date"
	if !e.Date.IsZero() {
		date = e.Date.Format(time.DateOnly)
	}
	msg := fmt.Sprintf("%v: %s %s: field %q", ErrDataIntegrity, e.Symbol, date, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataIntegrityError) Unwrap() []error { return kinds(ErrDataIntegrity, e.Err) }

// Configf formats a configuration error. %w verbs in format are honored.
func Configf(format string, args ...any) error {
	return wrapf(ErrConfiguration, format, args...)
}

// Computef formats a computation error. %w verbs in format are honored.
func Computef(format string, args ...any) error {
	return wrapf(ErrComputation, format, args...)
}

// NotFoundf formats a not-found error.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}

func kinds(kind, cause error) []error {
	if cause == nil {
		return []error{kind}
	}
	return []error{kind, cause}
}
