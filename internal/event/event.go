package event

import (
	"time"
)

// Status is the registration state of an event
type Status string

const (
	StatusOpen     Status = "open"
	StatusClosed   Status = "closed"
	StatusUpcoming Status = "upcoming"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusUpcoming:
		return true
	}
	return false
}

// ScheduleItem is one line of an event's agenda
type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Round is one stage of a competition
type Round struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Event represents a single event row from the feed after normalization.
// ID is derived from the row position and is only unique within one fetch.
type Event struct {
	ID                   string         `json:"id"`
	EventCode            string         `json:"eventCode,omitempty"`
	Title                string         `json:"title"`
	Date                 string         `json:"date"` // YYYY-MM-DD, or the raw cell when unparseable
	Time                 string         `json:"time,omitempty"`
	Venue                string         `json:"venue,omitempty"`
	Club                 string         `json:"club,omitempty"`
	Category             string         `json:"category"`
	Description          string         `json:"description"`
	Tags                 []string       `json:"tags"`
	Organizer            string         `json:"organizer"`
	RegistrationStatus   Status         `json:"registrationStatus"`
	RegistrationDeadline string         `json:"registrationDeadline,omitempty"`
	MaxParticipants      *int           `json:"maxParticipants,omitempty"`
	CurrentParticipants  *int           `json:"currentParticipants,omitempty"`
	Schedule             []ScheduleItem `json:"schedule,omitempty"`
	Rounds               []Round        `json:"rounds,omitempty"`
	Rules                []string       `json:"rules,omitempty"`
	ContactEmail         string         `json:"contactEmail,omitempty"`
	ContactPhone         string         `json:"contactPhone,omitempty"`
	Prize                string         `json:"prize,omitempty"`
	Fees                 string         `json:"fees,omitempty"`
	ImageURL             string         `json:"imageUrl,omitempty"`
}

// DefaultCategory is used when the feed has no category column or the cell is empty
const DefaultCategory = "General"

// ParsedDate returns the event date as a UTC time.
// Returns time.Time{} when the date is not in canonical form.
func (e *Event) ParsedDate() time.Time {
	return ParseDate(e.Date)
}

// Spots returns the number of places left and whether capacity is known.
// Registered counts above capacity report zero places.
func (e *Event) Spots() (int, bool) {
	if e.MaxParticipants == nil {
		return 0, false
	}
	taken := 0
	if e.CurrentParticipants != nil {
		taken = *e.CurrentParticipants
	}
	left := *e.MaxParticipants - taken
	if left < 0 {
		left = 0
	}
	return left, true
}

// IsPastEvent checks if an event's date has passed.
// Returns false if the date cannot be parsed (safer default).
func (e *Event) IsPastEvent(now time.Time) bool {
	parsed := e.ParsedDate()
	if parsed.IsZero() {
		return false
	}
	return parsed.Before(now)
}

// IsUpcoming checks if an event is on or after now.
// Returns false if the date cannot be parsed.
func (e *Event) IsUpcoming(now time.Time) bool {
	parsed := e.ParsedDate()
	if parsed.IsZero() {
		return false
	}
	return !parsed.Before(now)
}

// Clone returns a deep copy of the event
func (e *Event) Clone() *Event {
	c := *e
	c.Tags = append([]string(nil), e.Tags...)
	c.Schedule = append([]ScheduleItem(nil), e.Schedule...)
	c.Rounds = append([]Round(nil), e.Rounds...)
	c.Rules = append([]string(nil), e.Rules...)
	if e.MaxParticipants != nil {
		v := *e.MaxParticipants
		c.MaxParticipants = &v
	}
	if e.CurrentParticipants != nil {
		v := *e.CurrentParticipants
		c.CurrentParticipants = &v
	}
	return &c
}
