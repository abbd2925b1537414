package sheets

import (
	"context"
	"strings"

	"spendreport/internal/core"
)

// Ports for inbound grid sources and the import target.
type (
	// GridReader reads a spreadsheet-like source into a Grid.
	GridReader interface {
		ReadGrid(ctx context.Context) (Grid, error)
		// Name identifies the source in logs and errors (file path, sheet id).
		Name() string
	}

	// GridWriter stores a Grid; used to stage an export in SQLite.
	GridWriter interface {
		WriteGrid(ctx context.Context, g Grid) (int, error)
	}

	// SerialDater is implemented by readers whose numeric date cells are
	// spreadsheet serial numbers rather than text.
	SerialDater interface {
		SerialDates() bool
	}
)

// Row is one data row with its 1-based row number in the source.
type Row struct {
	Number int
	Cells  []string
}

// Get returns the cell at column i, or "" when the row is shorter.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Grid is a header plus data rows of raw cell text. Cell text is kept
// exactly as read; nothing is trimmed.
type Grid struct {
	Header []string
	Rows   []Row
}

// NewGrid builds a Grid from a values matrix. The first row that is not
// blank is the header; blank rows after it are skipped but keep their
// place in the row numbering.
func NewGrid(values [][]string) (Grid, error) {
	headerAt := -1
	for i, row := range values {
		if !isBlank(row) {
			headerAt = i
			break
		}
	}
	if headerAt == -1 {
		return Grid{}, core.ErrNoHeader
	}
	g := Grid{Header: append([]string(nil), values[headerAt]...)}
	for i := headerAt + 1; i < len(values); i++ {
		if isBlank(values[i]) {
			continue
		}
		g.Rows = append(g.Rows, Row{Number: i + 1, Cells: append([]string(nil), values[i]...)})
	}
	return g, nil
}

// IndexOf returns the position of column in the header, matching the
// name exactly, or -1.
func (g Grid) IndexOf(column string) int {
	for i, h := range g.Header {
		if h == column {
			return i
		}
	}
	return -1
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
