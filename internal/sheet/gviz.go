package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Wrapper describes the JavaScript callback wrapped around a gviz JSON response.
//
// The visualization endpoint answers with
//
//	/*O_o*/
//	google.visualization.Query.setResponse({...});
//
// so the JSON body sits at fixed offsets from both ends of the payload.
type Wrapper struct {
	PrefixLen int `yaml:"prefix_len"`
	SuffixLen int `yaml:"suffix_len"`
}

var gvizTrailer = []byte(");")

// DefaultWrapper matches the current gviz response preamble and trailer
var DefaultWrapper = Wrapper{PrefixLen: 47, SuffixLen: 2}

// Strip removes the wrapper and returns the JSON body.
// The byte before the body must be "(" and the trailer must start with ");"
// (or ")" for a one-byte trailer); anything else returns ErrWrapperMismatch.
func (w Wrapper) Strip(payload []byte) ([]byte, error) {
	p := bytes.TrimRight(payload, " \t\r\n")
	if w.PrefixLen < 0 || w.SuffixLen < 0 || len(p) <= w.PrefixLen+w.SuffixLen {
		return nil, fmt.Errorf("%w: payload too short (%d bytes)", ErrWrapperMismatch, len(p))
	}
	if w.PrefixLen > 0 && p[w.PrefixLen-1] != '(' {
		return nil, fmt.Errorf("%w: no opening parenthesis at offset %d", ErrWrapperMismatch, w.PrefixLen-1)
	}
	if trailer := p[len(p)-w.SuffixLen:]; !bytes.HasPrefix(trailer, gvizTrailer[:min(len(trailer), len(gvizTrailer))]) {
		return nil, fmt.Errorf("%w: trailer %q does not close the callback", ErrWrapperMismatch, trailer)
	}
	return p[w.PrefixLen : len(p)-w.SuffixLen], nil
}

type gvizResponse struct {
	Status string      `json:"status"`
	Errors []gvizError `json:"errors"`
	Table  *gvizTable  `json:"table"`
}

type gvizError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizCol struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V interface{} `json:"v"`
	F string      `json:"f"`
}

var gvizDate = regexp.MustCompile(`^Date\((\d+),(\d+),(\d+)`)

// ParseGViz strips the wrapper from a gviz payload and decodes its table
func ParseGViz(payload []byte, w Wrapper) (*Table, error) {
	body, err := w.Strip(payload)
	if err != nil {
		return nil, err
	}

	var resp gvizResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding gviz JSON: %w", err)
	}

	if resp.Status == "error" {
		msg := "unknown error"
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0].DetailedMessage
			if msg == "" {
				msg = resp.Errors[0].Message
			}
		}
		return nil, fmt.Errorf("gviz query failed: %s", msg)
	}
	if resp.Table == nil {
		return nil, ErrNoTable
	}

	table := &Table{Headers: make([]string, len(resp.Table.Cols))}
	for i, col := range resp.Table.Cols {
		label := strings.TrimSpace(col.Label)
		if label == "" {
			label = col.ID
		}
		table.Headers[i] = label
	}

	for _, row := range resp.Table.Rows {
		cells := make([]string, len(row.C))
		for i, c := range row.C {
			cells[i] = cellText(c)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// cellText renders a gviz cell value as the text a CSV export would contain.
// Date values become YYYY-MM-DD; gviz months are zero-based.
func cellText(c *gvizCell) string {
	if c == nil {
		return ""
	}

	switch v := c.V.(type) {
	case nil:
		return c.F
	case string:
		if m := gvizDate.FindStringSubmatch(v); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return c.F
	}
}
