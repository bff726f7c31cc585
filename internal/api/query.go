package api

import (
	"strings"
	"time"

	"quant_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// DateLayout is the YYYY-MM-DD form used in query strings and responses.
const DateLayout = time.DateOnly

// DateRange reads the optional start and end query parameters.
// A missing parameter is returned as the zero time.
func DateRange(c *gin.Context) (start, end time.Time, err error) {
	if start, err = ParseDate(c.Query("start"), "start"); err != nil {
		return
	}
	end, err = ParseDate(c.Query("end"), "end")
	return
}

// ParseDate parses an optional YYYY-MM-DD value named name.
func ParseDate(s, name string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Configf("%s must be YYYY-MM-DD, got %q", name, s)
	}
	return t, nil
}
