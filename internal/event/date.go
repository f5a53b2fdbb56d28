package event

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical date format used throughout the feed
const DateLayout = "2006-01-02"

var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCanonicalDate reports whether s is already in YYYY-MM-DD form
func IsCanonicalDate(s string) bool {
	return canonicalDate.MatchString(s)
}

// NormalizeDate converts a free-form date cell to YYYY-MM-DD.
//
// Canonical input is returned unchanged. Anything else is handed to a general date
// parser in UTC; on success the UTC calendar date is returned. When nothing can be
// parsed the raw text is returned as-is so the original value stays visible.
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	if IsCanonicalDate(raw) {
		return raw
	}

	v := strings.TrimSpace(raw)
	if !strings.ContainsAny(v, "0123456789") {
		return raw
	}

	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil || t.Year() == 0 {
		// year 0 means the parser found no year at all
		return raw
	}
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a canonical YYYY-MM-DD date as midnight UTC.
// Returns time.Time{} (zero value) if the text is not canonical.
func ParseDate(date string) time.Time {
	if !IsCanonicalDate(date) {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}
