package amqp

import (
	"encoding/json"
	"time"

	"spendreport/internal/core"
)

// ReportCompletedMessage announces a finished run with its summary totals.
type ReportCompletedMessage struct {
	RunID           string    `json:"run_id"`
	Source          string    `json:"source"`
	Lines           int       `json:"lines"`
	POCount         int       `json:"po_count"`
	TotalSpendCents int64     `json:"total_spend_cents"`
	SupplierCount   int       `json:"supplier_count"`
	BuyerCount      int       `json:"buyer_count"`
	DashboardPath   string    `json:"dashboard_path,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewReportCompletedMessage(runID, source string, lines int, s core.Summary, dashboardPath string) *ReportCompletedMessage {
	return &ReportCompletedMessage{
		RunID:           runID,
		Source:          source,
		Lines:           lines,
		POCount:         s.POCount,
		TotalSpendCents: s.TotalSpend.Cents,
		SupplierCount:   s.SupplierCount,
		BuyerCount:      s.BuyerCount,
		DashboardPath:   dashboardPath,
		Timestamp:       time.Now().UTC(),
	}
}

func (m *ReportCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
