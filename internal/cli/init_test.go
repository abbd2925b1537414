package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendreport/internal/config"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger("debug")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}
	if slog.Default() != logger.Logger {
		t.Error("logger not installed as default")
	}

	logger = SetupLogger("chatty")
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("unknown level should fall back to info")
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	logger := SetupLogger("error")
	t.Setenv("PO_SOURCE", "")
	t.Setenv("PO_INPUT_PATH", "")

	cfg, err := LoadAndValidateConfig(logger, func(c *config.Config) {
		c.InputPath = "exports/po.csv"
		c.Charts = false
	})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.InputPath != "exports/po.csv" || cfg.Charts {
		t.Errorf("override not applied: %+v", cfg)
	}

	_, err = LoadAndValidateConfig(logger, func(c *config.Config) { c.Source = "parquet" })
	if err == nil || !strings.Contains(err.Error(), "invalid source") {
		t.Fatalf("error = %v, want invalid source", err)
	}
}

func TestInitSQLite(t *testing.T) {
	logger := SetupLogger("error")
	path := filepath.Join(t.TempDir(), "nested", "po.db")

	repo, err := InitSQLite(logger, path)
	if err != nil {
		t.Fatalf("InitSQLite() error = %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	n, err := repo.CountLines(context.Background())
	if err != nil || n != 0 {
		t.Errorf("CountLines() = %d, %v", n, err)
	}
}

func TestInitPublisherDisabled(t *testing.T) {
	if p := InitPublisher(SetupLogger("error"), &config.Config{}); p != nil {
		t.Error("expected nil publisher without AMQP_URL")
	}
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(context.Background(), SetupLogger("error"))
	cancel()
	<-ctx.Done()
	if ctx.Err() != context.Canceled {
		t.Errorf("ctx.Err() = %v", ctx.Err())
	}
}
