package backend

import (
	"context"

	"spendreport/internal/sheets"
)

// CleanupFunc releases resources held by a source.
type CleanupFunc func() error

// SourceResult contains the grid source and an optional cleanup function.
type SourceResult struct {
	Source  sheets.GridReader
	Cleanup CleanupFunc
}

// Factory creates grid sources based on configuration
type Factory interface {
	CreateSource(ctx context.Context, config Config) (*SourceResult, error)
}

// Config holds configuration for source creation. Kind is always concrete
// here; "auto" is resolved by FromAppConfig.
type Config struct {
	Kind Kind

	// File sources
	InputPath string
	SheetName string
	CSVComma  rune

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetRange    string

	// SQLite
	SQLiteDBPath string

	// Memory source contents, header row first
	Values [][]string
}

// Kind is the type of grid source.
type Kind string

const (
	XLSXSource   Kind = "xlsx"
	CSVSource    Kind = "csv"
	SheetsSource Kind = "sheets"
	SQLiteSource Kind = "sqlite"
	MemorySource Kind = "memory"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case XLSXSource, CSVSource, SheetsSource, SQLiteSource, MemorySource:
		return true
	default:
		return false
	}
}
