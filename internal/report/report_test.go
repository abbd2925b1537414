package report

import (
	"bytes"
	"reflect"
	"testing"

	"spendreport/internal/analysis"
	"spendreport/internal/core"
)

func line(po, supplier, buyer string, cents int64) core.Line {
	return core.Line{PONumber: po, Supplier: supplier, ItemModel: "M", Buyer: buyer, AmountDue: core.Money{Cents: cents}}
}

func sample() *core.Table {
	return core.NewTable(core.RequiredColumns, []core.Line{
		line("PO-1", "Acme", "Ann", 10000),
		line("PO-1", "Acme", "Ann", 25050),
		line("PO-1", "Acme", "Ann", 4950),
		line("PO-2", "Acme ", "Bob", 123456789),
		line("PO-3", "Globex", "Bob", 1),
	}, nil)
}

func TestSummarize(t *testing.T) {
	got := Summarize(sample())
	want := core.Summary{
		POCount:       3,
		TotalSpend:    core.Money{Cents: 123496790},
		SupplierCount: 3,
		BuyerCount:    2,
	}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, tbl := range []*core.Table{core.NewTable(core.RequiredColumns, nil, nil), nil} {
		if got := Summarize(tbl); got != (core.Summary{}) {
			t.Fatalf("Summarize(empty) = %+v", got)
		}
	}
}

func TestSummaryMatchesAnalysis(t *testing.T) {
	tbl := sample()
	s := Summarize(tbl)

	var supplierTotal int64
	for _, g := range analysis.SpendBySupplier(tbl) {
		supplierTotal += g.Total.Cents
	}
	if supplierTotal != s.TotalSpend.Cents {
		t.Fatalf("supplier totals %d != summary total %d", supplierTotal, s.TotalSpend.Cents)
	}

	// Each PO here belongs to one buyer, so per-buyer counts add up.
	var poCount int
	for _, b := range analysis.BuyerMetrics(tbl) {
		poCount += b.POCount
	}
	if poCount != s.POCount {
		t.Fatalf("buyer PO counts %d != summary POs %d", poCount, s.POCount)
	}
	if len(analysis.SpendBySupplier(tbl)) != s.SupplierCount {
		t.Fatalf("supplier groups != distinct suppliers")
	}
	if !reflect.DeepEqual(Summarize(tbl), s) {
		t.Fatalf("Summarize not repeatable")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	s := core.Summary{POCount: 1234, TotalSpend: core.Money{Cents: 123456789}, SupplierCount: 56, BuyerCount: 7}
	if err := Write(&buf, s, "$"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "\nAnalysis Summary:\n================\nTotal POs: 1,234\nTotal Spend: $1,234,567.89\nTotal Suppliers: 56\nTotal Buyers: 7\n"
	if buf.String() != want {
		t.Fatalf("Write output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{40000, "$400.00"},
		{100000000, "$1,000,000.00"},
		{-1250, "-$12.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(core.Money{Cents: tc.cents}, "$"); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Fatalf("FormatCount = %q", got)
	}
}
