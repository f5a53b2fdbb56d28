package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pfrederiksen/sheet-events/internal/sheet"
)

// Transport selects how the published sheet is retrieved and decoded
type Transport string

const (
	TransportCSV  Transport = "csv"  // pub?output=csv export
	TransportGViz Transport = "gviz" // gviz/tq visualization query JSON
	TransportHTML Transport = "html" // pubhtml view
)

// ParseTransport validates a transport name
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case TransportCSV, TransportGViz, TransportHTML:
		return t, nil
	case "":
		return TransportCSV, nil
	}
	return "", fmt.Errorf("unknown transport %q (must be csv, gviz or html)", s)
}

// decode turns a raw payload into a table according to the transport
func decode(t Transport, body []byte, w sheet.Wrapper) (*sheet.Table, error) {
	switch t {
	case TransportGViz:
		return sheet.ParseGViz(body, w)
	case TransportHTML:
		return sheet.ParseHTML(bytes.NewReader(body))
	default:
		return sheet.ParseCSV(bytes.NewReader(body))
	}
}
