package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseHTML decodes the published HTML view of a sheet.
//
// The first <table> in the document is used. Header cells (<th>) hold row numbers
// and column letters and are ignored; the first row with any non-empty <td> is the
// header. Line breaks inside cells are kept as newlines.
func ParseHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}
	table.Find("br").Each(func(i int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})

	var rows [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return
		}

		row := make([]string, 0, cells.Length())
		blank := true
		cells.Each(func(j int, td *goquery.Selection) {
			text := strings.TrimSpace(td.Text())
			if text != "" {
				blank = false
			}
			row = append(row, text)
		})

		if !blank {
			rows = append(rows, row)
		}
	})

	if len(rows) == 0 {
		return &Table{}, nil
	}
	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}
