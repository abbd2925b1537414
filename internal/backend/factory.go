package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spendreport/internal/sheets/csvfile"
	gsheet "spendreport/internal/sheets/google"
	"spendreport/internal/sheets/memory"
	"spendreport/internal/sheets/xlsx"
	"spendreport/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (*SourceResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Kind {
	case XLSXSource:
		f.logger.Info("Using workbook source", "path", config.InputPath, "sheet", config.SheetName)
		return &SourceResult{Source: xlsx.New(config.InputPath, config.SheetName)}, nil
	case CSVSource:
		f.logger.Info("Using CSV source", "path", config.InputPath)
		return &SourceResult{Source: csvfile.New(config.InputPath, config.CSVComma)}, nil
	case SheetsSource:
		return f.createSheetsSource(ctx, config)
	case SQLiteSource:
		return f.createSQLiteSource(config)
	case MemorySource:
		f.logger.Info("Using memory source", "rows", len(config.Values))
		return &SourceResult{Source: memory.New("memory", config.Values)}, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Kind)
	}
}

func (f *DefaultFactory) createSheetsSource(ctx context.Context, config Config) (*SourceResult, error) {
	cli, err := gsheet.New(ctx, config.GoogleSpreadsheetID, config.GoogleSheetRange)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Using Google Sheets source", "range", config.GoogleSheetRange)

	return &SourceResult{Source: cli}, nil
}

func (f *DefaultFactory) createSQLiteSource(config Config) (*SourceResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Using SQLite source", "db_path", config.SQLiteDBPath)

	return &SourceResult{
		Source:  repo,
		Cleanup: repo.Close,
	}, nil
}
