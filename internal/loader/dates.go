package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"spendreport/internal/core"
	"spendreport/internal/sheets"
)

// DefaultDateLayouts are tried in order for text date cells. Slash dates
// are read month first; a day-first layout only matches when the first
// field cannot be a month (15/01/2024).
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
	"2006-01",
	"2006",
}

// serialLayout is how ExpandSerialDates writes converted serials; it is
// one of DefaultDateLayouts.
const serialLayout = "2006-01-02 15:04:05"

// parseDate converts a date cell to a time. Blank cells give the zero time.
// With serial set, purely numeric cells that match no layout are read as
// Excel serial dates (1900 date system).
func parseDate(s string, layouts []string, serial bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial {
		if t, ok := serialDate(s); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}

func serialDate(s string) (time.Time, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(n, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExpandSerialDates returns a copy of g whose creation-date cells holding
// an Excel serial are rewritten as text dates, so the grid can be stored
// and later loaded from a source that has no serial dates.
func ExpandSerialDates(g sheets.Grid) sheets.Grid {
	col := g.IndexOf(core.ColumnCreationDate)
	if col == -1 {
		return g
	}
	out := sheets.Grid{Header: g.Header, Rows: make([]sheets.Row, len(g.Rows))}
	for i, row := range g.Rows {
		out.Rows[i] = row
		raw := strings.TrimSpace(row.Get(col))
		if _, err := parseDate(raw, DefaultDateLayouts, false); err == nil {
			continue
		}
		if t, ok := serialDate(raw); ok {
			cells := append([]string(nil), row.Cells...)
			cells[col] = t.Format(serialLayout)
			out.Rows[i].Cells = cells
		}
	}
	return out
}
