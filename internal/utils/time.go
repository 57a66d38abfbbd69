package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Timestamp formats t as RFC3339 in UTC, the format stored on records.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// DateOnly keeps the YYYY-MM-DD prefix of an RFC3339 or date string.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= len(layoutDate) {
		return v[:len(layoutDate)]
	}
	return v
}

// ParseDate parses YYYY-MM-DD in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}
