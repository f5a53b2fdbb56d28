package sheet

import (
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ParseCSV decodes a CSV export.
//
// Records are separated by line breaks outside quoted fields and blank records are
// skipped. The first record is the header. A payload with a header but no data rows
// yields a table with no rows.
func ParseCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	text := strings.TrimPrefix(string(data), utf8BOM)
	records := splitRecords(text)
	if len(records) == 0 {
		return &Table{}, nil
	}

	table := &Table{Headers: parseRecord(records[0])}
	for _, rec := range records[1:] {
		table.Rows = append(table.Rows, parseRecord(rec))
	}
	return table, nil
}

// splitRecords splits text into records on newlines that are not inside quotes.
// A trailing carriage return is removed from each record. A quote opens a quoted
// span only at the start of a field, so a stray quote inside an unquoted value
// such as 5" screen stays literal and cannot swallow the following lines.
func splitRecords(text string) []string {
	var records []string
	var current strings.Builder
	inQuotes := false
	fieldStart := true
	justClosed := false

	flush := func() {
		rec := strings.TrimSuffix(current.String(), "\r")
		current.Reset()
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
	}

	for _, ch := range text {
		closed := false
		switch {
		case ch == '"' && inQuotes:
			inQuotes = false
			closed = true
			current.WriteRune(ch)
		case ch == '"' && (fieldStart || justClosed):
			// a doubled quote closes and immediately reopens
			inQuotes = true
			current.WriteRune(ch)
		case ch == '\n' && !inQuotes:
			flush()
		default:
			current.WriteRune(ch)
		}
		fieldStart = !inQuotes && (ch == ',' || ch == '\n')
		justClosed = closed
	}
	flush()

	return records
}

// parseRecord splits one record into fields.
// A quote opens a quoted field only at the start of a field; inside one, a doubled
// quote is a literal quote. After splitting, one leading and one trailing quote are
// stripped from every field.
func parseRecord(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	fieldStart := true

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"' && inQuotes:
			if i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = false
			}
		case ch == '"' && fieldStart:
			inQuotes = true
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
			fieldStart = true
			continue
		default:
			current.WriteRune(ch)
		}
		fieldStart = false
	}
	fields = append(fields, current.String())

	for i, f := range fields {
		f = strings.TrimPrefix(f, `"`)
		f = strings.TrimSuffix(f, `"`)
		fields[i] = f
	}
	return fields
}
