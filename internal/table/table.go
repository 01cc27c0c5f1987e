// Package table reads the rows of an HTML table keyed by its header labels.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when the fragment contains no <table> element.
var ErrNoTable = errors.New("no table found")

// Row maps a column label to the trimmed text of the row's cell.
// Cells beyond the number of header labels are dropped, and labels past the
// last cell are absent.
type Row map[string]string

// Get returns the cell text for label and whether the row has that column.
func (r Row) Get(label string) (string, bool) {
	v, ok := r[label]
	return v, ok
}

// Extract finds the first table in an HTML fragment and returns its body
// rows in document order. The first row holding <th> cells provides the
// column labels; without one, the first row is used.
func Extract(fragment string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, ErrNoTable
	}

	// The parser always wraps rows in a section, so nested tables are not
	// picked up here.
	trs := tbl.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")

	headerIdx := 0
	trs.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if tr.ChildrenFiltered("th").Length() > 0 {
			headerIdx = i
			return false
		}
		return true
	})

	var labels []string
	rows := make([]Row, 0, trs.Length())
	trs.Each(func(i int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		switch {
		case i == headerIdx:
			labels = cells
		case i > headerIdx:
			row := make(Row, len(cells))
			for j, text := range cells {
				if j >= len(labels) {
					break
				}
				row[labels[j]] = text
			}
			rows = append(rows, row)
		}
	})

	return rows, nil
}

func cellTexts(tr *goquery.Selection) []string {
	cells := tr.ChildrenFiltered("th, td")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
