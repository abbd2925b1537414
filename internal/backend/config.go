package backend

import (
	"fmt"
	"path/filepath"
	"strings"

	"spendreport/internal/config"
)

// FromAppConfig converts the application config to source config,
// resolving the "auto" source from the input file extension.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	kind, err := ResolveKind(appConfig.Source, appConfig.InputPath)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Kind:      kind,
		InputPath: appConfig.InputPath,
		SheetName: appConfig.SheetName,
		CSVComma:  ',',

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleSheetRange:    appConfig.GoogleSheetRange,

		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// ResolveKind maps a configured source name to a Kind. "auto" picks xlsx
// for .xlsx/.xlsm files and csv for .csv/.txt files.
func ResolveKind(source, inputPath string) (Kind, error) {
	if source != config.SourceAuto {
		kind := Kind(source)
		if !kind.IsValid() {
			return "", fmt.Errorf("invalid source type: %s", source)
		}
		return kind, nil
	}

	switch ext := strings.ToLower(filepath.Ext(inputPath)); ext {
	case ".xlsx", ".xlsm":
		return XLSXSource, nil
	case ".csv", ".txt":
		return CSVSource, nil
	default:
		return "", fmt.Errorf("cannot infer source type from %q: set PO_SOURCE to one of %v", inputPath, GetSourceKindStrings())
	}
}

func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Kind)
	}

	switch c.Kind {
	case XLSXSource, CSVSource:
		if c.InputPath == "" {
			return fmt.Errorf("input path is required for %s source", c.Kind)
		}
	case SheetsSource:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets source")
		}
		if c.GoogleSheetRange == "" {
			return fmt.Errorf("Google sheet range is required for sheets source")
		}
	case SQLiteSource:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite source")
		}
	case MemorySource:
	}

	return nil
}

func GetSourceKinds() []Kind {
	return []Kind{XLSXSource, CSVSource, SheetsSource, SQLiteSource, MemorySource}
}

func GetSourceKindStrings() []string {
	kinds := GetSourceKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
