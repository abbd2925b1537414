package storage

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"spendreport/internal/core"
	"spendreport/internal/sheets"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "po.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func exportGrid() sheets.Grid {
	return sheets.Grid{
		// Source order differs from the table order on purpose.
		Header: []string{"PO #", "Buyer", "Supplier Name", "Item Model Description", "PO Amount Due ", "Po Creation Date", "Notes"},
		Rows: []sheets.Row{
			{Number: 2, Cells: []string{"PO-1", "Ann", "Acme ", "X1", "100.00", "2024-01-05", "n/a"}},
			{Number: 4, Cells: []string{"PO-2", "Bob", "Globex", "X2", "49.5"}},
		},
	}
}

func TestWriteAndReadGrid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.WriteGrid(ctx, exportGrid())
	if err != nil || n != 2 {
		t.Fatalf("WriteGrid = %d, %v", n, err)
	}

	g, err := repo.ReadGrid(ctx)
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if !slices.Equal(g.Header, exportGrid().Header) {
		t.Fatalf("header = %q, want the export header in source order", g.Header)
	}
	if len(g.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(g.Rows))
	}
	first := g.Rows[0]
	if first.Number != 2 {
		t.Fatalf("source row = %d", first.Number)
	}
	if got := first.Get(g.IndexOf(core.ColumnSupplier)); got != "Acme " {
		t.Fatalf("supplier should be stored verbatim, got %q", got)
	}
	if got := first.Get(g.IndexOf(core.ColumnAmountDue)); got != "100.00" {
		t.Fatalf("amount text = %q", got)
	}
	if got := first.Get(g.IndexOf("Notes")); got != "n/a" {
		t.Fatalf("extra column cell = %q, want %q", got, "n/a")
	}
	second := g.Rows[1]
	if got := second.Get(g.IndexOf(core.ColumnCreationDate)); got != "" {
		t.Fatalf("missing cell should be stored blank, got %q", got)
	}
	if got := second.Get(g.IndexOf("Notes")); got != "" {
		t.Fatalf("missing extra cell should be stored blank, got %q", got)
	}
}

func TestReadGridWithoutImport(t *testing.T) {
	repo := newTestRepo(t)

	g, err := repo.ReadGrid(context.Background())
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if len(g.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(g.Rows))
	}
	for _, col := range core.RequiredColumns {
		if g.IndexOf(col) == -1 {
			t.Fatalf("header missing %q: %q", col, g.Header)
		}
	}
}

func TestWriteGridReplacesHeader(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.WriteGrid(ctx, exportGrid()); err != nil {
		t.Fatalf("first import: %v", err)
	}
	g := exportGrid()
	g.Header = append(g.Header[:6:6], "Currency", "Site")
	g.Rows = []sheets.Row{{Number: 2, Cells: []string{"PO-9", "Cy", "Initech", "X9", "5", "2024-02-02", "EUR", "Milan"}}}
	if _, err := repo.WriteGrid(ctx, g); err != nil {
		t.Fatalf("second import: %v", err)
	}

	got, err := repo.ReadGrid(ctx)
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if !slices.Equal(got.Header, g.Header) {
		t.Fatalf("header = %q, want %q", got.Header, g.Header)
	}
	if !slices.Equal(got.Rows[0].Cells, g.Rows[0].Cells) {
		t.Fatalf("cells = %q, want %q", got.Rows[0].Cells, g.Rows[0].Cells)
	}
}

func TestWriteGridReplacesPreviousImport(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.WriteGrid(ctx, exportGrid()); err != nil {
		t.Fatalf("first import: %v", err)
	}
	g := exportGrid()
	g.Rows = g.Rows[:1]
	if _, err := repo.WriteGrid(ctx, g); err != nil {
		t.Fatalf("second import: %v", err)
	}
	n, err := repo.CountLines(ctx)
	if err != nil || n != 1 {
		t.Fatalf("CountLines = %d, %v", n, err)
	}
}

func TestWriteGridMissingColumn(t *testing.T) {
	repo := newTestRepo(t)
	g := exportGrid()
	g.Header[4] = "PO Amount Due"

	_, err := repo.WriteGrid(context.Background(), g)
	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Column != core.ColumnAmountDue {
		t.Fatalf("expected SchemaError for %q, got %v", core.ColumnAmountDue, err)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "po.db")
	for i := 0; i < 2; i++ {
		if err := RunMigrations(path); err != nil {
			t.Fatalf("RunMigrations #%d: %v", i+1, err)
		}
	}
}

func TestSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "po.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	v, err := SchemaVersion(path)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Fatalf("SchemaVersion = %d, want 2", v)
	}

	// Migrations are idempotent on an up-to-date database.
	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations again: %v", err)
	}
}
