// Package report computes whole-table totals and prints the run summary.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"spendreport/internal/core"
)

// Summarize counts distinct PO numbers, suppliers and buyers and sums the
// amount due over every line. Blank values count as one distinct value, the
// same way they form a group in the analysis package.
func Summarize(t *core.Table) core.Summary {
	pos := make(map[string]struct{})
	suppliers := make(map[string]struct{})
	buyers := make(map[string]struct{})
	var total core.Money

	for _, l := range t.Lines() {
		pos[l.PONumber] = struct{}{}
		suppliers[l.Supplier] = struct{}{}
		buyers[l.Buyer] = struct{}{}
		total = total.Add(l.AmountDue)
	}

	return core.Summary{
		POCount:       len(pos),
		TotalSpend:    total,
		SupplierCount: len(suppliers),
		BuyerCount:    len(buyers),
	}
}

// Write prints the summary block:
//
//	Analysis Summary:
//	================
//	Total POs: 1,234
//	Total Spend: $1,234,567.89
//	Total Suppliers: 56
//	Total Buyers: 7
func Write(w io.Writer, s core.Summary, currency string) error {
	_, err := fmt.Fprintf(w, "\nAnalysis Summary:\n================\nTotal POs: %s\nTotal Spend: %s\nTotal Suppliers: %s\nTotal Buyers: %s\n",
		FormatCount(s.POCount),
		FormatMoney(s.TotalSpend, currency),
		FormatCount(s.SupplierCount),
		FormatCount(s.BuyerCount))
	return err
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatMoney renders m with the currency prefix, thousands separators and
// two decimals, e.g. "$1,234.50" or "-$12.00".
func FormatMoney(m core.Money, currency string) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, currency, humanize.Comma(cents/100), cents%100)
}
