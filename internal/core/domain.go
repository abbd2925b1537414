package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Source column names of the purchase-order export. They are matched
// verbatim, including the trailing space in the amount column.
const (
	ColumnCreationDate = "Po Creation Date"
	ColumnSupplier     = "Supplier Name"
	ColumnAmountDue    = "PO Amount Due "
	ColumnItemModel    = "Item Model Description"
	ColumnBuyer        = "Buyer"
	ColumnPONumber     = "PO #"

	// ColumnCurrency is optional; when present it is only checked for
	// mixed currencies, amounts are never converted.
	ColumnCurrency = "Currency"
)

// RequiredColumns lists every column a Line is built from.
var RequiredColumns = []string{
	ColumnCreationDate,
	ColumnSupplier,
	ColumnAmountDue,
	ColumnItemModel,
	ColumnBuyer,
	ColumnPONumber,
}

type (
	Money struct {
		Cents int64
	}

	// Line is one purchase-order line item. Several lines may share a PO number.
	Line struct {
		PONumber  string
		Supplier  string
		ItemModel string
		Buyer     string
		AmountDue Money
		CreatedAt time.Time // zero when the source cell was blank
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrNoHeader      = errors.New("no header row")
)

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// LoadError describes why a source could not be turned into a Table.
// Row is the 1-based spreadsheet row (header = 1), or 0 when the failure
// is not tied to a row.
type LoadError struct {
	Path string
	Op   string
	Row  int
	Err  error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load ")
	if e.Path != "" {
		fmt.Fprintf(&b, "%q", e.Path)
	} else {
		b.WriteString("source")
	}
	if e.Op != "" {
		b.WriteString(": " + e.Op)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " (row %d)", e.Row)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a required column that is absent from the source header.
type SchemaError struct {
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: missing required column %q; got columns=%q", e.Column, e.Available)
}
