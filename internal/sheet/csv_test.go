package sheet

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted delimiter", `"Hall A, Block 2",x`, []string{"Hall A, Block 2", "x"}},
		{"doubled quote", `"He said ""hi""",y`, []string{`He said "hi"`, "y"}},
		{"empty fields", "a,,c,", []string{"a", "", "c", ""}},
		{"edge quotes trimmed once", `"""quoted"""`, []string{"quoted"}},
		{"single field", "only", []string{"only"}},
		{"unicode", "Café,naïve", []string{"Café", "naïve"}},
		{"stray quote in unquoted field", `TV,5" screen,x`, []string{"TV", `5" screen`, "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRecord(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRecord(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"unix newlines", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows newlines", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines dropped", "a\n\n   \nb\n", []string{"a", "b"}},
		{"newline inside quotes kept", "h\n\"line1\nline2\",x\n", []string{"h", "\"line1\nline2\",x"}},
		{"stray quote stays on its line", "a,5\" screen\nb,c\n", []string{"a,5\" screen", "b,c"}},
		{"doubled quote inside multi-line field", "\"x\"\"y\nz\",w\nnext", []string{"\"x\"\"y\nz\",w", "next"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitRecords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRecords(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	input := "\ufeffTitle,Date,Schedule\r\n" +
		"Tech Talk,2025-01-15,\"10:00 AM - Registration\n11:00 AM - Keynote\"\r\n" +
		"\r\n" +
		"\"Quiz, Finals\",01/20/2025,\r\n"

	table, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}

	wantHeaders := []string{"Title", "Date", "Schedule"}
	if !reflect.DeepEqual(table.Headers, wantHeaders) {
		t.Errorf("Headers = %q, want %q", table.Headers, wantHeaders)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := table.Rows[0][2]; got != "10:00 AM - Registration\n11:00 AM - Keynote" {
		t.Errorf("multi-line cell = %q", got)
	}
	if got := table.Rows[1][0]; got != "Quiz, Finals" {
		t.Errorf("quoted cell = %q, want %q", got, "Quiz, Finals")
	}
}

func TestParseCSV_NoData(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty body", ""},
		{"whitespace only", "\n \n"},
		{"header only", "Title,Date\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseCSV() error: %v", err)
			}
			if table.Len() != 0 {
				t.Errorf("Len() = %d, want 0", table.Len())
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseCSV_ReadError(t *testing.T) {
	if _, err := ParseCSV(failingReader{}); err == nil {
		t.Error("ParseCSV() expected error for failing reader")
	}
}
