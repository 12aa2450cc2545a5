// internal/app/system/dates/dates.go
package dates

import (
	"errors"
	"strings"
	"time"
)

// Parse accepts the date formats clients actually send: bare dates and
// RFC 3339 timestamps.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("invalid date; use YYYY-MM-DD or RFC 3339")
}

// ParseOptional parses a date when present; an empty string yields nil.
func ParseOptional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
