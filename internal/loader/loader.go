// Package loader turns a grid source into the immutable purchase-order table.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendreport/internal/core"
	"spendreport/internal/log"
	"spendreport/internal/sheets"
)

// Option configures Load.
type Option func(*options)

type options struct {
	dateLayouts []string
	serialDates bool
	logger      *slog.Logger
}

// WithDateLayouts adds layouts tried before DefaultDateLayouts.
func WithDateLayouts(layouts ...string) Option {
	return func(o *options) {
		o.dateLayouts = append(append([]string(nil), layouts...), o.dateLayouts...)
	}
}

// WithSerialDates reads numeric date cells as Excel serial dates. Sources
// implementing sheets.SerialDater turn this on themselves.
func WithSerialDates() Option {
	return func(o *options) {
		o.serialDates = true
	}
}

// WithLogger sets the logger used for the load confirmation and failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		dateLayouts: append([]string(nil), DefaultDateLayouts...),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads src and binds every row to a core.Line.
//
// Failures are returned, never half a table: a source that cannot be read
// or holds an unparsable date or amount yields a *core.LoadError, a missing
// required column a *core.SchemaError. Both are logged before returning.
func Load(ctx context.Context, src sheets.GridReader, opts ...Option) (*core.Table, error) {
	o := applyOptions(opts)
	if sd, ok := src.(sheets.SerialDater); ok && sd.SerialDates() {
		o.serialDates = true
	}

	t, err := load(ctx, src, o)
	if err != nil {
		o.logger.ErrorContext(ctx, "Error loading the file", log.FieldSource, src.Name(), log.FieldError, err)
		return nil, err
	}
	o.logger.InfoContext(ctx, "Successfully loaded the input file",
		log.FieldSource, src.Name(),
		log.FieldRows, t.Len(),
		log.FieldColumns, len(t.Columns()))
	return t, nil
}

func load(ctx context.Context, src sheets.GridReader, o *options) (*core.Table, error) {
	g, err := src.ReadGrid(ctx)
	if err != nil {
		var le *core.LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &core.LoadError{Path: src.Name(), Op: "read", Err: err}
	}

	b, err := bind(g)
	if err != nil {
		return nil, err
	}

	lines := make([]core.Line, 0, len(g.Rows))
	cells := make([][]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		line, err := b.line(row, o)
		if err != nil {
			return nil, &core.LoadError{Path: src.Name(), Op: err.op, Row: row.Number, Err: err.err}
		}
		lines = append(lines, line)
		cells = append(cells, row.Cells)
	}
	return core.NewTable(g.Header, lines, cells), nil
}

// binding holds the header position of every required column.
type binding struct {
	date, supplier, amount, model, buyer, po int
}

func bind(g sheets.Grid) (binding, error) {
	var b binding
	targets := []struct {
		column string
		dst    *int
	}{
		{core.ColumnCreationDate, &b.date},
		{core.ColumnSupplier, &b.supplier},
		{core.ColumnAmountDue, &b.amount},
		{core.ColumnItemModel, &b.model},
		{core.ColumnBuyer, &b.buyer},
		{core.ColumnPONumber, &b.po},
	}
	for _, tg := range targets {
		i := g.IndexOf(tg.column)
		if i == -1 {
			return binding{}, &core.SchemaError{Column: tg.column, Available: append([]string(nil), g.Header...)}
		}
		*tg.dst = i
	}
	return b, nil
}

type cellError struct {
	op  string
	err error
}

func (b binding) line(row sheets.Row, o *options) (core.Line, *cellError) {
	created, err := parseDate(row.Get(b.date), o.dateLayouts, o.serialDates)
	if err != nil {
		return core.Line{}, &cellError{op: fmt.Sprintf("parse %q", core.ColumnCreationDate), err: err}
	}
	raw := row.Get(b.amount)
	amount, err := core.ParseAmount(raw)
	if err != nil {
		return core.Line{}, &cellError{op: fmt.Sprintf("parse %q", core.ColumnAmountDue), err: fmt.Errorf("%w: %q", err, raw)}
	}
	return core.Line{
		PONumber:  row.Get(b.po),
		Supplier:  row.Get(b.supplier),
		ItemModel: row.Get(b.model),
		Buyer:     row.Get(b.buyer),
		AmountDue: amount,
		CreatedAt: created,
	}, nil
}
