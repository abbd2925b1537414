package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"spendreport/internal/amqp"
	"spendreport/internal/analysis"
	"spendreport/internal/charts"
	"spendreport/internal/core"
	"spendreport/internal/loader"
	"spendreport/internal/log"
	"spendreport/internal/report"
	"spendreport/internal/sheets"
)

// Publisher announces a finished run.
type Publisher interface {
	PublishReportCompleted(ctx context.Context, msg *amqp.ReportCompletedMessage) error
}

// DashboardWriter renders the chart dashboard into a directory.
type DashboardWriter interface {
	WriteDashboard(dir string, in charts.Input) (string, error)
}

// ReportConfig holds the per-run report settings.
type ReportConfig struct {
	OutputDir   string
	Charts      bool
	TopModels   int
	Currency    string
	DateLayouts []string
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		OutputDir: "./out",
		Charts:    true,
		TopModels: 10,
		Currency:  "$",
	}
}

// Result is everything one run produced.
type Result struct {
	RunID         string
	Source        string
	Lines         int
	Summary       core.Summary
	Suppliers     []core.SupplierSpend
	Models        []core.ModelSpend
	TopModels     []core.ModelSpend
	Buyers        []core.BuyerMetric
	DashboardPath string
}

// ReportService runs the spend analysis: load, aggregate, render, summarize
// and notify, in that order on the calling goroutine.
type ReportService struct {
	config    ReportConfig
	dashboard DashboardWriter
	publisher Publisher
	out       io.Writer
	logger    *log.Logger
	now       func() time.Time
	newRunID  func() string
}

// NewReportService wires a service. dashboard and publisher may be nil;
// the summary block is printed to out.
func NewReportService(config ReportConfig, dashboard DashboardWriter, publisher Publisher, out io.Writer, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.FromSlog(nil, log.ComponentPipeline)
	}
	if out == nil {
		out = io.Discard
	}
	return &ReportService{
		config:    config,
		dashboard: dashboard,
		publisher: publisher,
		out:       out,
		logger:    logger.WithComponent(log.ComponentPipeline),
		now:       time.Now,
		newRunID:  func() string { return uuid.NewString() },
	}
}

// Run produces the full report for src. A load failure aborts the run
// before any chart or summary is produced.
func (s *ReportService) Run(ctx context.Context, src sheets.GridReader) (*Result, error) {
	return s.run(ctx, src, true)
}

// Summary loads src and prints only the summary block, without
// aggregation or charts.
func (s *ReportService) Summary(ctx context.Context, src sheets.GridReader) (*Result, error) {
	return s.run(ctx, src, false)
}

func (s *ReportService) run(ctx context.Context, src sheets.GridReader, full bool) (*Result, error) {
	runID := s.newRunID()
	logger := s.logger.With(log.NewFields().WithRunID(runID).ToSlice()...)
	start := s.now()

	t, err := loader.Load(ctx, src,
		loader.WithDateLayouts(s.config.DateLayouts...),
		loader.WithLogger(logger.Logger.With(log.NewFields().WithComponent(log.ComponentLoader).ToSlice()...)))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	if codes := analysis.Currencies(t); len(codes) > 1 {
		logger.WarnContext(ctx, "Export mixes currencies, totals add amounts as they are", "currencies", codes)
	}

	res := &Result{
		RunID:   runID,
		Source:  src.Name(),
		Lines:   t.Len(),
		Summary: report.Summarize(t),
	}

	if full {
		res.Suppliers = analysis.SpendBySupplier(t)
		res.Models = analysis.SpendByModel(t)
		res.TopModels = analysis.TopModels(res.Models, s.config.TopModels)
		res.Buyers = analysis.BuyerMetrics(t)
		logger.DebugContext(ctx, "Aggregated purchase orders",
			log.FieldSuppliers, len(res.Suppliers),
			log.FieldModels, len(res.Models),
			log.FieldBuyers, len(res.Buyers))

		if s.config.Charts && s.dashboard != nil {
			path, err := s.writeDashboard(res)
			if err != nil {
				return nil, err
			}
			res.DashboardPath = path
			logger.InfoContext(ctx, "Wrote chart dashboard", log.FieldOperation, log.OpRender, log.FieldOutput, path)
		}
	}

	if err := report.Write(s.out, res.Summary, s.config.Currency); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	fields := log.NewFields().
		WithOperation(log.OpSummarize).
		WithSummary(res.Summary.POCount, res.Summary.TotalSpend.Cents, res.Summary.SupplierCount, res.Summary.BuyerCount)
	fields[log.FieldDuration] = s.now().Sub(start).Milliseconds()
	logger.InfoContext(ctx, "Report completed", fields.ToSlice()...)

	s.publish(ctx, logger, res)
	return res, nil
}

func (s *ReportService) writeDashboard(res *Result) (string, error) {
	path, err := s.dashboard.WriteDashboard(s.config.OutputDir, charts.Input{
		RunID:       res.RunID,
		Source:      res.Source,
		GeneratedAt: s.now(),
		Currency:    s.config.Currency,
		TopN:        s.config.TopModels,
		Summary:     res.Summary,
		Suppliers:   res.Suppliers,
		Models:      res.Models,
		TopModels:   res.TopModels,
		Buyers:      res.Buyers,
	})
	if err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}
	return path, nil
}

// publish is best effort: the report is already written when it runs.
func (s *ReportService) publish(ctx context.Context, logger *log.Logger, res *Result) {
	if s.publisher == nil {
		logger.DebugContext(ctx, "AMQP publisher not configured, skipping report completed message")
		return
	}
	msg := amqp.NewReportCompletedMessage(res.RunID, res.Source, res.Lines, res.Summary, res.DashboardPath)
	if err := s.publisher.PublishReportCompleted(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to publish report completed message",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).ToSlice()...)
	}
}

// Import copies the grid read from src into dst and returns the number
// of rows written. Serial dates from workbooks are stored as text dates.
func (s *ReportService) Import(ctx context.Context, src sheets.GridReader, dst sheets.GridWriter) (int, error) {
	g, err := src.ReadGrid(ctx)
	if err != nil {
		var le *core.LoadError
		if !errors.As(err, &le) {
			err = &core.LoadError{Path: src.Name(), Op: "read", Err: err}
		}
		return 0, fmt.Errorf("import %s: %w", src.Name(), err)
	}
	if sd, ok := src.(sheets.SerialDater); ok && sd.SerialDates() {
		g = loader.ExpandSerialDates(g)
	}

	n, err := dst.WriteGrid(ctx, g)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", src.Name(), err)
	}

	s.logger.InfoContext(ctx, "Imported purchase-order lines",
		log.FieldOperation, log.OpImport,
		log.FieldSource, src.Name(),
		log.FieldRows, n)
	return n, nil
}
