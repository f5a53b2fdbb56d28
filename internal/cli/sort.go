package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/sheet-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByFeed  SortOrder = "feed"
	SortByDate  SortOrder = "date"
	SortByTitle SortOrder = "title"
)

// ParseSortOrder validates a sort order name. Empty keeps feed order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortByFeed, SortByDate, SortByTitle:
		return o, nil
	case "":
		return SortByFeed, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'feed', 'date' or 'title')", s)
}

// sortEvents sorts a slice of events in place. Feed order is left untouched.
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate compares two events by their date
// Returns true if event i should come before event j
func compareByDate(i, j *event.Event) bool {
	dateI := i.ParsedDate()
	dateJ := j.ParsedDate()

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// Undated events go last
	if !dateI.IsZero() {
		return true
	}
	if !dateJ.IsZero() {
		return false
	}

	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
