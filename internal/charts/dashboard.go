package charts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"spendreport/internal/core"
	"spendreport/internal/report"
	appweb "spendreport/web"
)

const (
	// DashboardFile is the file name written into the output directory.
	DashboardFile = "dashboard.html"

	defaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	dashboardTmpl    = "dashboard.html"
)

// Input is everything the dashboard shows for one run.
type Input struct {
	RunID       string
	Source      string
	GeneratedAt time.Time
	Currency    string
	TopN        int

	Summary   core.Summary
	Suppliers []core.SupplierSpend
	Models    []core.ModelSpend
	TopModels []core.ModelSpend
	Buyers    []core.BuyerMetric
}

// Figures builds the five report figures in display order.
func Figures(in Input) []Figure {
	return []Figure{
		SupplierBar(in.Suppliers),
		SupplierDonut(in.Suppliers),
		ModelBar(in.Models),
		TopModelsDonut(in.TopModels, in.TopN),
		BuyerBubble(in.Buyers),
	}
}

type total struct {
	Label string
	Value string
}

type dashboardData struct {
	Title       string
	Source      string
	RunID       string
	GeneratedAt string
	PlotlyURL   string
	Totals      []total
	Figures     []Figure
	FiguresJSON template.JS
}

// Renderer renders the dashboard template.
type Renderer struct {
	tmpl      *template.Template
	plotlyURL string
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t, plotlyURL: defaultPlotlyURL}, nil
}

// Render writes the HTML dashboard for in to w.
func (r *Renderer) Render(w io.Writer, in Input) error {
	figures := Figures(in)
	raw, err := json.Marshal(figures)
	if err != nil {
		return fmt.Errorf("encode figures: %w", err)
	}

	data := dashboardData{
		Title:       "Supplier and PO Spend Analysis",
		Source:      in.Source,
		RunID:       in.RunID,
		GeneratedAt: in.GeneratedAt.Format(time.RFC3339),
		PlotlyURL:   r.plotlyURL,
		Totals: []total{
			{"Total POs", report.FormatCount(in.Summary.POCount)},
			{"Total Spend", report.FormatMoney(in.Summary.TotalSpend, in.Currency)},
			{"Total Suppliers", report.FormatCount(in.Summary.SupplierCount)},
			{"Total Buyers", report.FormatCount(in.Summary.BuyerCount)},
		},
		Figures:     figures,
		FiguresJSON: template.JS(raw),
	}

	if err := r.tmpl.ExecuteTemplate(w, dashboardTmpl, data); err != nil {
		return fmt.Errorf("execute %s: %w", dashboardTmpl, err)
	}
	return nil
}

// WriteDashboard renders into dir/dashboard.html, creating dir when
// needed, and returns the written path. The file is replaced atomically.
func (r *Renderer) WriteDashboard(dir string, in Input) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, in); err != nil {
		return "", err
	}

	path := filepath.Join(dir, DashboardFile)
	tmp, err := os.CreateTemp(dir, DashboardFile+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close dashboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename dashboard: %w", err)
	}
	return path, nil
}
