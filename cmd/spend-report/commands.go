package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spendreport/internal/backend"
	"spendreport/internal/charts"
	"spendreport/internal/cli"
	"spendreport/internal/config"
	"spendreport/internal/log"
	"spendreport/internal/services"
)

// flags holds command-line overrides; empty values keep the environment.
type flags struct {
	input    string
	source   string
	sheet    string
	out      string
	noCharts bool
}

func (f *flags) apply(c *config.Config) {
	if f.input != "" {
		c.InputPath = f.input
	}
	if f.source != "" {
		c.Source = f.source
	}
	if f.sheet != "" {
		c.SheetName = f.sheet
	}
	if f.out != "" {
		c.OutputDir = f.out
	}
	if f.noCharts {
		c.Charts = false
	}
}

func newRootCommand(logger *log.Logger) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "spend-report",
		Short:         "Analyze purchase-order spend by supplier, item model and buyer",
		Long:          "Loads a purchase-order export (xlsx, csv, Google Sheet or staged SQLite table), renders the spend charts dashboard and prints the analysis summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, logger, f, false)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.input, "input", "", "input file path (PO_INPUT_PATH)")
	pf.StringVar(&f.source, "source", "", "source type: auto, xlsx, csv, sheets or sqlite (PO_SOURCE)")
	pf.StringVar(&f.sheet, "sheet", "", "worksheet name for xlsx input (PO_SHEET_NAME)")

	cmd.Flags().StringVar(&f.out, "out", "", "dashboard output directory (REPORT_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&f.noCharts, "no-charts", false, "skip the chart dashboard")

	cmd.AddCommand(newRunCommand(logger, f))
	cmd.AddCommand(newSummaryCommand(logger, f))
	cmd.AddCommand(newImportCommand(logger, f))

	return cmd
}

func newRunCommand(logger *log.Logger, f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render the chart dashboard and print the summary (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, logger, f, false)
		},
	}
	cmd.Flags().StringVar(&f.out, "out", "", "dashboard output directory (REPORT_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&f.noCharts, "no-charts", false, "skip the chart dashboard")
	return cmd
}

func newSummaryCommand(logger *log.Logger, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print only the analysis summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, logger, f, true)
		},
	}
}

func newImportCommand(logger *log.Logger, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Stage the input export in the SQLite po_lines table",
		Long:  "Copies the input source into SQLITE_DB_PATH so later runs can use --source sqlite.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := cli.LoadAndValidateConfig(logger, f.apply)
			if err != nil {
				return err
			}
			if cfg.Source == config.SourceSQLite {
				return fmt.Errorf("import needs a file or sheets source, got %q", cfg.Source)
			}

			src, err := openSource(cmd, logger, cfg)
			if err != nil {
				return err
			}
			defer closeSource(logger, src)

			repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			svc := services.NewReportService(reportConfig(cfg), nil, nil, cmd.OutOrStdout(), logger)
			n, err := svc.Import(ctx, src.Source, repo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into %s\n", n, cfg.SQLiteDBPath)
			return nil
		},
	}
}

func runReport(cmd *cobra.Command, logger *log.Logger, f *flags, summaryOnly bool) error {
	ctx := cmd.Context()
	cfg, err := cli.LoadAndValidateConfig(logger, f.apply)
	if err != nil {
		return err
	}

	src, err := openSource(cmd, logger, cfg)
	if err != nil {
		return err
	}
	defer closeSource(logger, src)

	var dashboard services.DashboardWriter
	if cfg.Charts && !summaryOnly {
		r, err := charts.NewRenderer()
		if err != nil {
			return err
		}
		dashboard = r
	}

	var publisher services.Publisher
	if client := cli.InitPublisher(logger, cfg); client != nil {
		defer client.Close()
		publisher = client
	}

	svc := services.NewReportService(reportConfig(cfg), dashboard, publisher, cmd.OutOrStdout(), logger)
	if summaryOnly {
		_, err = svc.Summary(ctx, src.Source)
		return err
	}
	res, err := svc.Run(ctx, src.Source)
	if err != nil {
		return err
	}
	if res.DashboardPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nDashboard: %s\n", res.DashboardPath)
	}
	return nil
}

func openSource(cmd *cobra.Command, logger *log.Logger, cfg *config.Config) (*backend.SourceResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(logger.Logger.With(log.FieldComponent, log.ComponentBackend)).CreateSource(cmd.Context(), bcfg)
}

func closeSource(logger *log.Logger, src *backend.SourceResult) {
	if src.Cleanup == nil {
		return
	}
	if err := src.Cleanup(); err != nil {
		logger.Warn("Failed to close source", log.FieldError, err)
	}
}

func reportConfig(cfg *config.Config) services.ReportConfig {
	return services.ReportConfig{
		OutputDir:   cfg.OutputDir,
		Charts:      cfg.Charts,
		TopModels:   cfg.TopModels,
		Currency:    cfg.Currency,
		DateLayouts: cfg.DateLayouts,
	}
}
