// Package source resolves a location string into a grid reader.
//
// Supported locations:
//
//	stock.csv                 comma separated file
//	stock.tsv                 tab separated file
//	MB52.xlsx#Sheet1          workbook sheet (first sheet when omitted)
//	sqlite:stock.db#mb52      SQLite table
//	sheets:<id>#Issues!A:K    Google Sheets range (id falls back to config)
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/stockcheck/pkg/infrastructure/config"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/sheets"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/xlsx"
)

const (
	sqlitePrefix = "sqlite:"
	sheetsPrefix = "sheets:"
)

// Source is a resolved grid reader that may hold resources
type Source struct {
	tabular.GridReader
	close func() error
}

// Close releases the resources held by the source
func (s *Source) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Resolve opens the source named by location
func Resolve(ctx context.Context, location string, sheetsCfg config.SheetsConfig, logger *zap.Logger) (*Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("source location must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch {
	case strings.HasPrefix(location, sqlitePrefix):
		path, table := splitFragment(strings.TrimPrefix(location, sqlitePrefix))
		if table == "" {
			return nil, fmt.Errorf("sqlite source %q must name a table after '#'", location)
		}
		reader, err := sqlite.Open(path, table)
		if err != nil {
			return nil, err
		}
		return &Source{GridReader: reader, close: reader.Close}, nil

	case strings.HasPrefix(location, sheetsPrefix):
		id, sheetRange := splitFragment(strings.TrimPrefix(location, sheetsPrefix))
		cfg := sheetsCfg
		if id != "" {
			cfg.SpreadsheetID = id
		}
		reader, err := sheets.NewGoogleSheetReader(ctx, cfg, sheetRange, logger.Named("source.sheets"))
		if err != nil {
			return nil, err
		}
		return &Source{GridReader: reader}, nil
	}

	path, fragment := splitFragment(location)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &Source{GridReader: xlsx.NewWorkbook(path, fragment)}, nil
	case ".tsv":
		return &Source{GridReader: csv.NewLoader(location).WithDelimiter('\t')}, nil
	default:
		// Paths may legitimately contain '#', so only workbooks split on it.
		return &Source{GridReader: csv.NewLoader(location)}, nil
	}
}

func splitFragment(s string) (string, string) {
	if i := strings.LastIndex(s, "#"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
