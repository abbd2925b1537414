package sheets

import (
	"errors"
	"testing"

	"spendreport/internal/core"
)

func TestNewGrid(t *testing.T) {
	values := [][]string{
		{"", ""},
		{"PO #", "PO Amount Due "},
		{"PO-1", "10"},
		{" ", ""},
		{"PO-2"},
	}
	g, err := NewGrid(values)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if len(g.Header) != 2 || g.Header[1] != "PO Amount Due " {
		t.Fatalf("header should be kept verbatim: %q", g.Header)
	}
	if len(g.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(g.Rows))
	}
	if g.Rows[0].Number != 3 || g.Rows[1].Number != 5 {
		t.Fatalf("row numbers should follow the source: %d, %d", g.Rows[0].Number, g.Rows[1].Number)
	}
	if got := g.Rows[1].Get(1); got != "" {
		t.Fatalf("short row should read as blank, got %q", got)
	}
	if g.IndexOf("PO Amount Due") != -1 || g.IndexOf("PO Amount Due ") != 1 {
		t.Fatalf("IndexOf must match exactly")
	}
}

func TestNewGridEmpty(t *testing.T) {
	for _, values := range [][][]string{nil, {{"", " "}}} {
		if _, err := NewGrid(values); !errors.Is(err, core.ErrNoHeader) {
			t.Fatalf("expected ErrNoHeader, got %v", err)
		}
	}
}
