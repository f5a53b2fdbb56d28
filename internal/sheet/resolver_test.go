package sheet

import "testing"

func TestColumns_Index(t *testing.T) {
	cols := NewColumns([]string{"Event Code", "Event Title", " Venue ", "Registration Deadline", "Registration Status"})

	tests := []struct {
		candidate string
		want      int
	}{
		{"title", 1},
		{"TITLE", 1},
		{"event", 0}, // first header containing the substring wins
		{"venue", 2},
		{"registration", 3},
		{"status", 4},
		{"missing", -1},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			if got := cols.Index(tt.candidate); got != tt.want {
				t.Errorf("Index(%q) = %d, want %d", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestColumns_Lookup(t *testing.T) {
	cols := NewColumns([]string{"Name", "Location", "Place", "Organizer", "Club"})

	tests := []struct {
		name       string
		row        []string
		candidates []string
		want       string
	}{
		{
			name:       "first candidate resolves",
			row:        []string{"Debate", "Hall B", "", "", ""},
			candidates: []string{"title", "name", "event"},
			want:       "Debate",
		},
		{
			name:       "empty cell moves to next candidate",
			row:        []string{"Debate", "  ", "Lawn", "", ""},
			candidates: []string{"venue", "location", "place"},
			want:       "Lawn",
		},
		{
			name:       "value is trimmed",
			row:        []string{"  Debate  "},
			candidates: []string{"name"},
			want:       "Debate",
		},
		{
			name:       "short row",
			row:        []string{"Debate"},
			candidates: []string{"club"},
			want:       "",
		},
		{
			name:       "priority order, not header order",
			row:        []string{"", "", "", "Dr. Chen", "Robotics Club"},
			candidates: []string{"club", "organizer"},
			want:       "Robotics Club",
		},
		{
			name:       "nothing matches",
			row:        []string{"a", "b", "c", "d", "e"},
			candidates: []string{"email"},
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cols.Lookup(tt.row, tt.candidates...); got != tt.want {
				t.Errorf("Lookup(%v) = %q, want %q", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestColumns_LookupOr(t *testing.T) {
	cols := NewColumns([]string{"Category"})
	if got := cols.LookupOr([]string{""}, "General", "category", "type"); got != "General" {
		t.Errorf("LookupOr() = %q, want General", got)
	}
	if got := cols.LookupOr([]string{"Cultural"}, "General", "category", "type"); got != "Cultural" {
		t.Errorf("LookupOr() = %q, want Cultural", got)
	}
}
