package session

import (
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
)

// Envelope is the JSON shape shared by the CLI and the HTTP API
type Envelope struct {
	LoadedAt   time.Time      `json:"loaded_at"`
	Source     Origin         `json:"source"`
	FetchID    string         `json:"fetch_id"`
	EventCount int            `json:"event_count"`
	Events     []*event.Event `json:"events"`

	Changes *ChangeSummary `json:"changes,omitempty"`
}

// ChangeSummary counts what a reload changed
type ChangeSummary struct {
	Added   int                  `json:"added"`
	Removed int                  `json:"removed"`
	Changed []*event.EventChange `json:"changed"`
}

// Summary describes the set's changes, or nil for a first load
func (s *Set) Summary() *ChangeSummary {
	if s.Changes == nil {
		return nil
	}
	changed := s.Changes.Changes
	if changed == nil {
		changed = []*event.EventChange{}
	}
	return &ChangeSummary{
		Added:   len(s.Changes.Added),
		Removed: len(s.Changes.Removed),
		Changed: changed,
	}
}

// Envelope wraps events (usually a filtered view of s.Events) with the set's metadata
func (s *Set) Envelope(events []*event.Event) Envelope {
	if events == nil {
		events = []*event.Event{}
	}
	return Envelope{
		LoadedAt:   s.LoadedAt,
		Source:     s.Source,
		FetchID:    s.FetchID,
		EventCount: len(events),
		Events:     events,
	}
}
