package event

import (
	"math"
	"strings"
	"time"
)

// upcomingWindowDays is how far ahead an event can be before it counts as upcoming
const upcomingWindowDays = 30

// ResolveStatus decides the registration status of an event.
//
// An explicit status cell wins when it mentions "open", "closed", "upcoming" or
// "soon" (checked in that order). Otherwise the status is inferred from the number of
// whole days between now and the event date: past events are closed, events more
// than 30 days out are upcoming and the rest are open. An unknown date means open.
func ResolveStatus(raw, date string, now time.Time) Status {
	if s := strings.ToLower(strings.TrimSpace(raw)); s != "" {
		switch {
		case strings.Contains(s, "open"):
			return StatusOpen
		case strings.Contains(s, "closed"):
			return StatusClosed
		case strings.Contains(s, "upcoming"), strings.Contains(s, "soon"):
			return StatusUpcoming
		}
	}

	eventDate := ParseDate(date)
	if eventDate.IsZero() {
		return StatusOpen
	}

	days := daysBetween(now, eventDate)
	switch {
	case days < 0:
		return StatusClosed
	case days > upcomingWindowDays:
		return StatusUpcoming
	default:
		return StatusOpen
	}
}

// daysBetween returns floor((to - from) / 24h)
func daysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	return int(math.Floor(float64(diff) / float64(24*time.Hour)))
}
