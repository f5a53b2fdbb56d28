package sheet

import "errors"

var (
	// ErrNoTable is returned when a payload decodes but carries no table
	ErrNoTable = errors.New("payload contains no table")
	// ErrWrapperMismatch is returned when a gviz response does not have the expected wrapper
	ErrWrapperMismatch = errors.New("gviz wrapper mismatch")
)

// Table is a decoded sheet: one header row followed by data rows.
// Rows may be shorter or longer than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns a resolver over the table headers
func (t *Table) Columns() *Columns {
	return NewColumns(t.Headers)
}
