// Package csvfile reads comma-separated exports into grids.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"spendreport/internal/sheets"
)

const bom = "\ufeff"

// Reader reads a CSV file on disk.
type Reader struct {
	path  string
	comma rune
}

var _ sheets.GridReader = (*Reader)(nil)

// New returns a Reader for path. comma defaults to ',' when zero.
func New(path string, comma rune) *Reader {
	if comma == 0 {
		comma = ','
	}
	return &Reader{path: path, comma: comma}
}

func (r *Reader) Name() string {
	return r.path
}

func (r *Reader) ReadGrid(ctx context.Context) (sheets.Grid, error) {
	if err := ctx.Err(); err != nil {
		return sheets.Grid{}, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return sheets.Grid{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Parse(f, r.comma)
}

// Parse reads CSV records from src. Rows may have different lengths.
func Parse(src io.Reader, comma rune) (sheets.Grid, error) {
	cr := csv.NewReader(src)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var values [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sheets.Grid{}, fmt.Errorf("parse csv: %w", err)
		}
		if len(values) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], bom)
		}
		// encoding/csv drops empty lines; pad so row numbers match file lines.
		line, _ := cr.FieldPos(0)
		for len(values) < line-1 {
			values = append(values, nil)
		}
		values = append(values, rec)
	}
	return sheets.NewGrid(values)
}
