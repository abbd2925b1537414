package core

import "slices"

// Table is the loaded purchase-order export. It is never modified after
// NewTable returns; every accessor hands out copies.
type Table struct {
	columns []string
	lines   []Line
	cells   [][]string
}

// NewTable builds a Table from the source header, the typed lines and the
// raw cell text of each line. cells may be nil.
func NewTable(columns []string, lines []Line, cells [][]string) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		lines:   slices.Clone(lines),
	}
	if cells != nil {
		t.cells = make([][]string, len(cells))
		for i, row := range cells {
			t.cells[i] = slices.Clone(row)
		}
	}
	return t
}

// Len returns the number of lines. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lines)
}

// Columns returns the source column names verbatim, in source order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.columns)
}

// Lines returns a copy of every line in source order.
func (t *Table) Lines() []Line {
	if t == nil {
		return nil
	}
	return slices.Clone(t.lines)
}

// Line returns the i-th line, or the zero Line when i is out of range or
// the Table is nil.
func (t *Table) Line(i int) Line {
	if t == nil || i < 0 || i >= len(t.lines) {
		return Line{}
	}
	return t.lines[i]
}

// Cell returns the raw text of column for line i. The column name must
// match exactly.
func (t *Table) Cell(i int, column string) (string, bool) {
	if t == nil || i < 0 || i >= len(t.cells) {
		return "", false
	}
	col := slices.Index(t.columns, column)
	if col == -1 {
		return "", false
	}
	row := t.cells[i]
	if col >= len(row) {
		return "", true
	}
	return row[col], true
}

// HasColumn reports whether the source header contains column verbatim.
func (t *Table) HasColumn(column string) bool {
	if t == nil {
		return false
	}
	return slices.Contains(t.columns, column)
}
