package sheets

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/vsinha/stockcheck/pkg/infrastructure/config"
)

// GoogleSheetReader reads a range of a Google spreadsheet as a grid of cells
type GoogleSheetReader struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetReader builds a reader authenticated with the configured service account
func NewGoogleSheetReader(ctx context.Context, cfg config.SheetsConfig, sheetRange string, logger *zap.Logger) (*GoogleSheetReader, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided to read Google Sheets")
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewGoogleSheetReaderFromService(service, cfg.SpreadsheetID, sheetRange, logger)
}

// NewGoogleSheetReaderFromService wraps an existing Sheets service
func NewGoogleSheetReaderFromService(service *sheetsapi.Service, spreadsheetID, sheetRange string, logger *zap.Logger) (*GoogleSheetReader, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GoogleSheetReader{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		logger:        logger,
	}, nil
}

// ReadGrid fetches the range with unformatted values
func (r *GoogleSheetReader) ReadGrid(ctx context.Context) ([][]string, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("range read from sheet",
		zap.String("range", r.sheetRange),
		zap.Int("rows", len(resp.Values)))

	return toGrid(resp.Values), nil
}

// Describe names the source in log lines and errors
func (r *GoogleSheetReader) Describe() string {
	return "sheets:" + r.spreadsheetID + "#" + r.sheetRange
}

func toGrid(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
