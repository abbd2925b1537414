package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsCellsVerbatim(t *testing.T) {
	src := "\ufeffPO #,Supplier Name,PO Amount Due \nPO-1,Acme ,\"1,250.50\"\n\nPO-2,Globex\n"
	g, err := Parse(strings.NewReader(src), ',')
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Header[0] != "PO #" {
		t.Fatalf("BOM should be stripped from the first header, got %q", g.Header[0])
	}
	if g.IndexOf("PO Amount Due ") != 2 {
		t.Fatalf("header not verbatim: %q", g.Header)
	}
	if len(g.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(g.Rows))
	}
	if got := g.Rows[0].Get(1); got != "Acme " {
		t.Fatalf("supplier = %q", got)
	}
	if got := g.Rows[0].Get(2); got != "1,250.50" {
		t.Fatalf("amount = %q", got)
	}
	if g.Rows[1].Number != 4 {
		t.Fatalf("row number = %d", g.Rows[1].Number)
	}
}

func TestReadGridFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "po.csv")
	if err := os.WriteFile(path, []byte("PO #;Buyer\nPO-1;Ann\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := New(path, ';')
	g, err := r.ReadGrid(context.Background())
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if r.Name() != path || len(g.Rows) != 1 || g.Rows[0].Get(1) != "Ann" {
		t.Fatalf("unexpected grid: %+v", g)
	}

	if _, err := New(filepath.Join(t.TempDir(), "missing.csv"), 0).ReadGrid(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
