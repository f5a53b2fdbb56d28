package event

import (
	"sort"
	"strings"
)

// Change types reported by DetectChanges
const (
	ChangeNew    = "new"
	ChangeDate   = "date"
	ChangeTitle  = "title"
	ChangeVenue  = "venue"
	ChangeStatus = "status"
)

// EventChange represents a change detected in an event between two loads
type EventChange struct {
	EventID    string `json:"event_id"`
	StableKey  string `json:"stable_key"`
	ChangeType string `json:"change_type"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// DiffResult contains the results of comparing two loads of the feed
type DiffResult struct {
	Added   []*Event
	Removed []*Event
	Changes []*EventChange // field changes on events present in both loads
}

// Empty reports whether nothing changed
func (d *DiffResult) Empty() bool {
	return d == nil || (len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changes) == 0)
}

// StableKey identifies an event across loads. Row ids shift when rows are inserted,
// so the event code is used when present and the title otherwise.
func StableKey(evt *Event) string {
	if code := strings.TrimSpace(evt.EventCode); code != "" {
		return "code:" + strings.ToLower(code)
	}
	return "title:" + strings.ToLower(strings.Join(strings.Fields(evt.Title), " "))
}

// Diff compares two event lists by stable key
func Diff(previous, current []*Event) *DiffResult {
	result := &DiffResult{}

	prevIndex := make(map[string]*Event, len(previous))
	for _, evt := range previous {
		prevIndex[StableKey(evt)] = evt
	}

	seen := make(map[string]bool, len(current))
	for _, evt := range current {
		key := StableKey(evt)
		seen[key] = true
		prev, exists := prevIndex[key]
		if !exists {
			result.Added = append(result.Added, evt)
			continue
		}
		result.Changes = append(result.Changes, DetectChanges(prev, evt)...)
	}

	for _, evt := range previous {
		if !seen[StableKey(evt)] {
			result.Removed = append(result.Removed, evt)
		}
	}

	// Sort changes for consistent output
	sort.SliceStable(result.Changes, func(i, j int) bool {
		return result.Changes[i].StableKey < result.Changes[j].StableKey
	})
	return result
}

// DetectChanges compares two versions of an event and returns detected changes.
// A nil previous event yields a single "new" change.
func DetectChanges(previous, current *Event) []*EventChange {
	key := StableKey(current)
	if previous == nil {
		return []*EventChange{{
			EventID:    current.ID,
			StableKey:  key,
			ChangeType: ChangeNew,
			NewValue:   current.Title,
		}}
	}

	var changes []*EventChange
	add := func(changeType, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, &EventChange{
				EventID:    current.ID,
				StableKey:  key,
				ChangeType: changeType,
				OldValue:   oldValue,
				NewValue:   newValue,
			})
		}
	}

	add(ChangeDate, previous.Date, current.Date)
	add(ChangeTitle, previous.Title, current.Title)
	add(ChangeVenue, previous.Venue, current.Venue)
	add(ChangeStatus, string(previous.RegistrationStatus), string(current.RegistrationStatus))
	return changes
}
