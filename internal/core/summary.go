package core

// SupplierSpend is the total amount due for one supplier.
type SupplierSpend struct {
	Supplier string
	Total    Money
}

// ModelSpend is the total amount due for one item model.
type ModelSpend struct {
	Model string
	Total Money
}

// BuyerMetric summarizes the lines handled by one buyer.
type BuyerMetric struct {
	Buyer         string
	POCount       int // distinct PO numbers
	Total         Money
	SupplierCount int // distinct supplier names
}

// Summary holds the whole-table totals printed at the end of a run.
type Summary struct {
	POCount       int
	TotalSpend    Money
	SupplierCount int
	BuyerCount    int
}
