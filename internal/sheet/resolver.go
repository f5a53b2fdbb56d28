package sheet

import "strings"

// Columns locates semantic fields in a header row whose labels are not known in advance
type Columns struct {
	headers []string // lowercased
}

// NewColumns creates a resolver over the given header labels
func NewColumns(headers []string) *Columns {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return &Columns{headers: lower}
}

// Index returns the position of the first header containing candidate
// (case-insensitive), or -1 if none does.
func (c *Columns) Index(candidate string) int {
	needle := strings.ToLower(candidate)
	for i, h := range c.headers {
		if strings.Contains(h, needle) {
			return i
		}
	}
	return -1
}

// Lookup returns the trimmed cell for the first candidate that resolves to a
// non-empty value. Candidates are tried in order; for each one only the first
// matching header is consulted. Returns "" when nothing matches.
func (c *Columns) Lookup(row []string, candidates ...string) string {
	for _, candidate := range candidates {
		idx := c.Index(candidate)
		if idx < 0 || idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return ""
}

// LookupOr is Lookup with a default for when nothing resolves
func (c *Columns) LookupOr(row []string, def string, candidates ...string) string {
	if v := c.Lookup(row, candidates...); v != "" {
		return v
	}
	return def
}
