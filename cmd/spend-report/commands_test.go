package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendreport/internal/config"
	"spendreport/internal/log"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = io.Discard
	return log.New(cfg)
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "po.csv")
	body := "PO #,Po Creation Date,Supplier Name,Item Model Description,Buyer,PO Amount Due \n" +
		"PO-1,2024-01-05,Acme,X1,Ann,100.00\n" +
		"PO-1,2024-01-05,Acme,X2,Ann,250.50\n" +
		"PO-2,2024-02-01,Globex,X1,Bob,\"1,049.50\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"PO_INPUT_PATH", "PO_SOURCE", "PO_SHEET_NAME", "REPORT_OUTPUT_DIR", "REPORT_CHARTS", "AMQP_URL", "SQLITE_DB_PATH"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(quietLogger())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFlagsApply(t *testing.T) {
	cfg := &config.Config{InputPath: "a.xlsx", Source: "auto", OutputDir: "./out", Charts: true}
	(&flags{}).apply(cfg)
	if cfg.InputPath != "a.xlsx" || !cfg.Charts {
		t.Errorf("empty flags changed config: %+v", cfg)
	}

	(&flags{input: "b.csv", source: "csv", sheet: "PO", out: "/tmp/r", noCharts: true}).apply(cfg)
	if cfg.InputPath != "b.csv" || cfg.Source != "csv" || cfg.SheetName != "PO" || cfg.OutputDir != "/tmp/r" || cfg.Charts {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestSummaryCommand(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "summary", "--input", writeExport(t))
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}
	for _, want := range []string{"Total POs: 2", "Total Spend: $1,400.00", "Total Suppliers: 2", "Total Buyers: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandWritesDashboard(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "out")
	out, err := execute(t, "run", "--input", writeExport(t), "--out", dir)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dashboard.html")); err != nil {
		t.Errorf("dashboard not written: %v", err)
	}
	if !strings.Contains(out, "Analysis Summary:") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestRunCommandMissingFile(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "--input", filepath.Join(t.TempDir(), "missing.csv"), "--no-charts")
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if strings.Contains(out, "Analysis Summary:") {
		t.Error("summary printed after a failed load")
	}
}

func TestImportCommand(t *testing.T) {
	clearEnv(t)
	db := filepath.Join(t.TempDir(), "po.db")
	t.Setenv("SQLITE_DB_PATH", db)

	out, err := execute(t, "import", "--input", writeExport(t))
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported 3 rows") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "summary", "--source", "sqlite")
	if err != nil {
		t.Fatalf("summary from sqlite error = %v", err)
	}
	if !strings.Contains(out, "Total Spend: $1,400.00") {
		t.Errorf("summary from sqlite:\n%s", out)
	}
}
