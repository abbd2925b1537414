package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"spendreport/internal/core"
	"spendreport/internal/log"
	"spendreport/internal/sheets"

	_ "modernc.org/sqlite"
)

// poColumns maps export columns to po_lines columns, in header order.
var poColumns = []struct {
	header string
	column string
}{
	{core.ColumnCreationDate, "po_creation_date"},
	{core.ColumnSupplier, "supplier_name"},
	{core.ColumnAmountDue, "po_amount_due"},
	{core.ColumnItemModel, "item_model_description"},
	{core.ColumnBuyer, "buyer"},
	{core.ColumnPONumber, "po_number"},
}

type SQLiteRepository struct {
	db   *sql.DB
	path string
}

var (
	_ sheets.GridReader = (*SQLiteRepository)(nil)
	_ sheets.GridWriter = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Name() string {
	return "sqlite:" + r.path
}

// ReadGrid implements sheets.GridReader. The header is the export header
// recorded by the last WriteGrid, so the loader binds staged rows like any
// other source; a database without one gets the required columns only.
func (r *SQLiteRepository) ReadGrid(ctx context.Context) (sheets.Grid, error) {
	header, err := r.header(ctx)
	if err != nil {
		return sheets.Grid{}, err
	}
	idx, err := requiredIndexes(header)
	if err != nil {
		return sheets.Grid{}, fmt.Errorf("staged header: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT source_row, po_creation_date, supplier_name, po_amount_due,
		       item_model_description, buyer, po_number, extra
		FROM po_lines
		ORDER BY source_row, id`)
	if err != nil {
		return sheets.Grid{}, fmt.Errorf("query po lines: %w", err)
	}
	defer rows.Close()

	g := sheets.Grid{Header: header}
	for rows.Next() {
		var number int
		var extra string
		typed := make([]string, len(poColumns))
		if err := rows.Scan(&number, &typed[0], &typed[1], &typed[2], &typed[3], &typed[4], &typed[5], &extra); err != nil {
			return sheets.Grid{}, fmt.Errorf("scan po line: %w", err)
		}
		var rest []string
		if err := json.Unmarshal([]byte(extra), &rest); err != nil {
			return sheets.Grid{}, fmt.Errorf("decode extra cells of row %d: %w", number, err)
		}

		cells := make([]string, len(header))
		for i, c := range typed {
			cells[idx[i]] = c
		}
		for i := range cells {
			if !slices.Contains(idx, i) && len(rest) > 0 {
				cells[i], rest = rest[0], rest[1:]
			}
		}
		g.Rows = append(g.Rows, sheets.Row{Number: number, Cells: cells})
	}
	if err := rows.Err(); err != nil {
		return sheets.Grid{}, fmt.Errorf("iterate po lines: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) header(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM po_columns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query po columns: %w", err)
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan po column: %w", err)
		}
		header = append(header, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate po columns: %w", err)
	}
	if len(header) == 0 {
		for _, c := range poColumns {
			header = append(header, c.header)
		}
	}
	return header, nil
}

// requiredIndexes returns the header position of each poColumns entry.
func requiredIndexes(header []string) ([]int, error) {
	g := sheets.Grid{Header: header}
	idx := make([]int, len(poColumns))
	for i, c := range poColumns {
		idx[i] = g.IndexOf(c.header)
		if idx[i] == -1 {
			return nil, &core.SchemaError{Column: c.header, Available: header}
		}
	}
	return idx, nil
}

// WriteGrid implements sheets.GridWriter. It replaces the staged export
// with g in one transaction; every required column must be present and
// the remaining columns are kept alongside.
func (r *SQLiteRepository) WriteGrid(ctx context.Context, g sheets.Grid) (int, error) {
	idx, err := requiredIndexes(g.Header)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM po_lines`, `DELETE FROM po_columns`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return 0, fmt.Errorf("clear staged import: %w", err)
		}
	}
	for i, name := range g.Header {
		if _, err := tx.ExecContext(ctx, `INSERT INTO po_columns (position, name) VALUES (?, ?)`, i, name); err != nil {
			return 0, fmt.Errorf("insert column %q: %w", name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO po_lines (source_row, po_creation_date, supplier_name, po_amount_due,
		                      item_model_description, buyer, po_number, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range g.Rows {
		args := []any{row.Number}
		for _, i := range idx {
			args = append(args, row.Get(i))
		}
		rest := []string{}
		for i := range g.Header {
			if !slices.Contains(idx, i) {
				rest = append(rest, row.Get(i))
			}
		}
		extra, err := json.Marshal(rest)
		if err != nil {
			return 0, fmt.Errorf("encode extra cells of row %d: %w", row.Number, err)
		}
		args = append(args, string(extra))
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", row.Number, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "PO lines staged in SQLite",
		log.FieldRows, len(g.Rows),
		log.FieldColumns, len(g.Header),
		log.FieldOutput, r.path)
	return len(g.Rows), nil
}

// CountLines returns the number of staged rows.
func (r *SQLiteRepository) CountLines(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM po_lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count po lines: %w", err)
	}
	return n, nil
}
