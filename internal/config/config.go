package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"spendreport/internal/log"
)

// Source kinds accepted by PO_SOURCE.
const (
	SourceAuto   = "auto"
	SourceXLSX   = "xlsx"
	SourceCSV    = "csv"
	SourceSheets = "sheets"
	SourceSQLite = "sqlite"
)

var validSources = []string{SourceAuto, SourceXLSX, SourceCSV, SourceSheets, SourceSQLite}

type Config struct {
	// Input
	InputPath   string
	Source      string
	SheetName   string
	DateLayouts []string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetRange    string

	// Database
	SQLiteDBPath string

	// Report
	OutputDir string
	Charts    bool
	TopModels int
	Currency  string

	// AMQP
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	LogLevel string
}

func Load() *Config {
	return &Config{
		InputPath:   getEnv("PO_INPUT_PATH", "data/PO_Report.xlsx"),
		Source:      getEnv("PO_SOURCE", SourceAuto),
		SheetName:   getEnv("PO_SHEET_NAME", ""),
		DateLayouts: getEnvList("PO_DATE_LAYOUTS", ";"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetRange:    getEnv("GOOGLE_SHEET_RANGE", "PO Report!A:Z"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/po.db"),

		OutputDir: getEnv("REPORT_OUTPUT_DIR", "./out"),
		Charts:    getEnvBool("REPORT_CHARTS", true),
		TopModels: getEnvInt("REPORT_TOP_MODELS", 10),
		Currency:  getEnv("REPORT_CURRENCY", "$"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "po_spend"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "report.completed"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validSources, c.Source) {
		errors = append(errors, fmt.Sprintf("invalid source '%s': must be one of %v", c.Source, validSources))
	}

	switch c.Source {
	case SourceAuto, SourceXLSX, SourceCSV:
		if c.InputPath == "" {
			errors = append(errors, fmt.Sprintf("input path cannot be empty when using %s source", c.Source))
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetRange == "" {
			errors = append(errors, "Google sheet range is required when using sheets source")
		}
	case SourceSQLite:
		if err := c.ensureSQLiteDir(); err != "" {
			errors = append(errors, err)
		}
	}

	if c.Charts && c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty when charts are enabled")
	}
	if c.TopModels < 1 {
		errors = append(errors, fmt.Sprintf("invalid top models %d: must be at least 1", c.TopModels))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ensureSQLiteDir creates the database directory when missing and returns a
// validation message on failure.
func (c *Config) ensureSQLiteDir() string {
	if c.SQLiteDBPath == "" {
		return "SQLite database path cannot be empty when using sqlite source"
	}
	dir := filepath.Dir(c.SQLiteDBPath)
	if dir == "." || dir == "" {
		return ""
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err)
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a separated value, dropping empty entries.
func getEnvList(key, sep string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
