// Package xlsx reads Excel workbooks into grids.
package xlsx

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"spendreport/internal/sheets"
)

// Reader reads one worksheet of a workbook on disk.
type Reader struct {
	path  string
	sheet string // empty = first sheet
}

var (
	_ sheets.GridReader  = (*Reader)(nil)
	_ sheets.SerialDater = (*Reader)(nil)
)

func New(path, sheet string) *Reader {
	return &Reader{path: path, sheet: sheet}
}

func (r *Reader) Name() string {
	return r.path
}

// SerialDates reports true: date cells come back as Excel serials.
func (r *Reader) SerialDates() bool {
	return true
}

// ReadGrid returns the worksheet cells as stored, without number formats
// applied: amounts come back as plain decimals and dates as Excel serials.
func (r *Reader) ReadGrid(ctx context.Context) (sheets.Grid, error) {
	if err := ctx.Err(); err != nil {
		return sheets.Grid{}, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return sheets.Grid{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return sheets.Grid{}, errors.New("workbook has no sheets")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheets.Grid{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return sheets.NewGrid(rows)
}
