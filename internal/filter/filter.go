// Package filter narrows an event list the way the list view does.
//
// A filter combines a free-text query with a time window and optional exact
// category and status matches:
//   - Query: case-insensitive substring of the title, description, any tag or the category
//   - When: all, upcoming (date at or after now) or past (date before now)
//   - Category / Status: case-insensitive equality
//
// Example usage:
//
//	f := filter.Filter{Query: "music", When: filter.WhenUpcoming}
//	upcoming := f.Apply(events, time.Now())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
)

// When selects events by their position relative to now
type When string

const (
	WhenAll      When = "all"
	WhenUpcoming When = "upcoming"
	WhenPast     When = "past"
)

// ParseWhen validates a time window name. Empty means all.
func ParseWhen(s string) (When, error) {
	switch w := When(strings.ToLower(strings.TrimSpace(s))); w {
	case WhenAll, WhenUpcoming, WhenPast:
		return w, nil
	case "":
		return WhenAll, nil
	}
	return "", fmt.Errorf("invalid time filter %q (must be all, upcoming or past)", s)
}

// Filter represents event filtering criteria. The zero value matches everything.
type Filter struct {
	Query    string `json:"q,omitempty"`
	When     When   `json:"when,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

// IsEmpty checks if the filter has any active criteria
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" &&
		(f.When == "" || f.When == WhenAll) &&
		strings.TrimSpace(f.Category) == "" &&
		strings.TrimSpace(f.Status) == ""
}

// Matches checks if an event passes every active criterion.
// Events with an unparseable date never match the upcoming or past windows.
func (f Filter) Matches(evt *event.Event, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(evt, q) {
		return false
	}

	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(evt.Category, c) {
		return false
	}

	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(string(evt.RegistrationStatus), s) {
		return false
	}

	switch f.When {
	case WhenUpcoming:
		return evt.IsUpcoming(now)
	case WhenPast:
		return evt.IsPastEvent(now)
	}
	return true
}

func matchesQuery(evt *event.Event, q string) bool {
	if strings.Contains(strings.ToLower(evt.Title), q) ||
		strings.Contains(strings.ToLower(evt.Description), q) ||
		strings.Contains(strings.ToLower(evt.Category), q) {
		return true
	}
	for _, tag := range evt.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the events that match, preserving order.
// The result is never nil.
func (f Filter) Apply(events []*event.Event, now time.Time) []*event.Event {
	filtered := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if f.IsEmpty() || f.Matches(evt, now) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: `Search: "music" | When: upcoming | Category: Cultural`
func (f Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", q))
	}
	if f.When != "" && f.When != WhenAll {
		parts = append(parts, fmt.Sprintf("When: %s", f.When))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", c))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		parts = append(parts, fmt.Sprintf("Status: %s", s))
	}
	return strings.Join(parts, " | ")
}
