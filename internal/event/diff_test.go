package event

import "testing"

func TestStableKey(t *testing.T) {
	tests := []struct {
		name string
		evt  *Event
		want string
	}{
		{"event code", &Event{EventCode: " TS2025 ", Title: "Tech"}, "code:ts2025"},
		{"title fallback", &Event{Title: "  Spring   Music Festival "}, "title:spring music festival"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StableKey(tt.evt); got != tt.want {
				t.Errorf("StableKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	previous := []*Event{
		{ID: "1", EventCode: "A", Title: "Debate", Date: "2025-01-20", RegistrationStatus: StatusOpen},
		{ID: "2", Title: "Quiz Night", Date: "2025-01-25", Venue: "Hall", RegistrationStatus: StatusOpen},
		{ID: "3", EventCode: "C", Title: "Cancelled Talk", Date: "2025-02-01"},
	}
	current := []*Event{
		// row inserted above: ids shift but keys do not
		{ID: "1", EventCode: "N", Title: "New Workshop", Date: "2025-03-01"},
		{ID: "2", EventCode: "a", Title: "Debate", Date: "2025-01-22", RegistrationStatus: StatusClosed},
		{ID: "3", Title: "quiz night", Date: "2025-01-25", Venue: "Hall", RegistrationStatus: StatusOpen},
	}

	result := Diff(previous, current)

	if len(result.Added) != 1 || result.Added[0].EventCode != "N" {
		t.Errorf("Added = %+v, want the new workshop", result.Added)
	}
	if len(result.Removed) != 1 || result.Removed[0].EventCode != "C" {
		t.Errorf("Removed = %+v, want the cancelled talk", result.Removed)
	}

	want := map[string]bool{ChangeDate: true, ChangeStatus: true, ChangeTitle: true}
	if len(result.Changes) != len(want) {
		t.Fatalf("Changes = %d, want %d: %+v", len(result.Changes), len(want), result.Changes)
	}
	for _, c := range result.Changes {
		if !want[c.ChangeType] {
			t.Errorf("unexpected change %+v", c)
		}
		if c.ChangeType == ChangeDate && (c.OldValue != "2025-01-20" || c.NewValue != "2025-01-22") {
			t.Errorf("date change = %+v", c)
		}
	}
	if result.Empty() {
		t.Error("Empty() should be false")
	}
}

func TestDiff_Identical(t *testing.T) {
	events := []*Event{
		{ID: "1", EventCode: "A", Title: "Debate"},
		{ID: "2", Title: "Quiz"},
	}
	if result := Diff(events, events); !result.Empty() {
		t.Errorf("Diff(same, same) = %+v, want empty", result)
	}
}

func TestDiff_FromNothing(t *testing.T) {
	current := []*Event{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	result := Diff(nil, current)
	if len(result.Added) != 2 || len(result.Removed) != 0 || len(result.Changes) != 0 {
		t.Errorf("Diff(nil, current) = %+v", result)
	}
}

func TestDetectChanges_New(t *testing.T) {
	changes := DetectChanges(nil, &Event{ID: "7", Title: "Chess Open"})
	if len(changes) != 1 || changes[0].ChangeType != ChangeNew || changes[0].NewValue != "Chess Open" {
		t.Errorf("DetectChanges(nil, evt) = %+v", changes)
	}
}
