// Package analysis groups purchase-order lines and reduces each group.
//
// Grouping keys are compared byte for byte: no trimming or case folding, so
// "Acme" and "Acme " stay separate groups. Every function is a pure pass over
// the table and returns a fresh slice on each call.
package analysis

import (
	"cmp"
	"slices"
	"strings"

	"spendreport/internal/core"
)

// SpendBySupplier sums the amount due per supplier name, ordered by name.
func SpendBySupplier(t *core.Table) []core.SupplierSpend {
	totals, keys := sumBy(t, func(l core.Line) string { return l.Supplier })
	slices.Sort(keys)

	out := make([]core.SupplierSpend, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.SupplierSpend{Supplier: k, Total: core.Money{Cents: totals[k]}})
	}
	return out
}

// SpendByModel sums the amount due per item model, highest spend first.
// Equal totals are ordered by model name.
func SpendByModel(t *core.Table) []core.ModelSpend {
	totals, keys := sumBy(t, func(l core.Line) string { return l.ItemModel })

	out := make([]core.ModelSpend, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.ModelSpend{Model: k, Total: core.Money{Cents: totals[k]}})
	}
	slices.SortFunc(out, func(a, b core.ModelSpend) int {
		if c := cmp.Compare(b.Total.Cents, a.Total.Cents); c != 0 {
			return c
		}
		return strings.Compare(a.Model, b.Model)
	})
	return out
}

// TopModels returns the first n entries of a SpendByModel result.
// n <= 0 returns every entry.
func TopModels(spend []core.ModelSpend, n int) []core.ModelSpend {
	if n <= 0 || n > len(spend) {
		n = len(spend)
	}
	return slices.Clone(spend[:n])
}

// BuyerMetrics reports, per buyer, the distinct PO numbers, the summed
// amount due and the distinct suppliers, ordered by buyer name. Lines that
// share a PO number count once.
func BuyerMetrics(t *core.Table) []core.BuyerMetric {
	type acc struct {
		pos       map[string]struct{}
		suppliers map[string]struct{}
		total     int64
	}
	groups := make(map[string]*acc)
	var keys []string

	for _, l := range t.Lines() {
		g, ok := groups[l.Buyer]
		if !ok {
			g = &acc{pos: make(map[string]struct{}), suppliers: make(map[string]struct{})}
			groups[l.Buyer] = g
			keys = append(keys, l.Buyer)
		}
		g.pos[l.PONumber] = struct{}{}
		g.suppliers[l.Supplier] = struct{}{}
		g.total += l.AmountDue.Cents
	}
	slices.Sort(keys)

	out := make([]core.BuyerMetric, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, core.BuyerMetric{
			Buyer:         k,
			POCount:       len(g.pos),
			Total:         core.Money{Cents: g.total},
			SupplierCount: len(g.suppliers),
		})
	}
	return out
}

// Currencies returns the distinct non-blank values of the Currency
// column, sorted. It is nil when the export has no such column.
func Currencies(t *core.Table) []string {
	if !t.HasColumn(core.ColumnCurrency) {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for i := range t.Len() {
		v, _ := t.Cell(i, core.ColumnCurrency)
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// sumBy totals amounts per key and returns the keys in first-seen order.
func sumBy(t *core.Table, key func(core.Line) string) (map[string]int64, []string) {
	totals := make(map[string]int64)
	var keys []string
	for _, l := range t.Lines() {
		k := key(l)
		if _, seen := totals[k]; !seen {
			keys = append(keys, k)
		}
		totals[k] += l.AmountDue.Cents
	}
	return totals, keys
}
