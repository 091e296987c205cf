package tabular

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/domain/repositories"
)

// GridReader reads a rectangular grid of cells, header row first
type GridReader interface {
	ReadGrid(ctx context.Context) ([][]string, error)
	Describe() string
}

// InventoryRepository decodes inventory from any grid source
type InventoryRepository struct {
	reader  GridReader
	columns StockColumns
	logger  *zap.Logger
}

// NewInventoryRepository creates an inventory repository over a grid source
func NewInventoryRepository(reader GridReader, columns StockColumns, logger *zap.Logger) *InventoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryRepository{reader: reader, columns: columns, logger: logger}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// GetStockTable reads and decodes the inventory grid
func (r *InventoryRepository) GetStockTable(ctx context.Context) (*entities.StockTable, error) {
	grid, err := r.reader.ReadGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory from %s: %w", r.reader.Describe(), err)
	}

	table, err := DecodeStock(grid, r.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to decode inventory from %s: %w", r.reader.Describe(), err)
	}

	r.logger.Debug("inventory loaded",
		zap.String("source", r.reader.Describe()),
		zap.Int("records", len(table.Records)),
		zap.Any("columns", table.Columns))
	return table, nil
}

// RequestRepository decodes transfer requests from any grid source
type RequestRepository struct {
	reader  GridReader
	columns RequestColumns
	logger  *zap.Logger
}

// NewRequestRepository creates a request repository over a grid source
func NewRequestRepository(reader GridReader, columns RequestColumns, logger *zap.Logger) *RequestRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestRepository{reader: reader, columns: columns, logger: logger}
}

// Verify interface compliance
var _ repositories.RequestRepository = (*RequestRepository)(nil)

// GetRequests reads and decodes the request grid
func (r *RequestRepository) GetRequests(ctx context.Context) ([]*entities.TransferRequest, error) {
	grid, err := r.reader.ReadGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read requests from %s: %w", r.reader.Describe(), err)
	}

	requests, err := DecodeRequests(grid, r.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to decode requests from %s: %w", r.reader.Describe(), err)
	}

	r.logger.Debug("requests loaded",
		zap.String("source", r.reader.Describe()),
		zap.Int("requests", len(requests)))
	return requests, nil
}

// StaticGrid is a GridReader over cells already in memory
type StaticGrid [][]string

// ReadGrid returns the grid itself
func (g StaticGrid) ReadGrid(context.Context) ([][]string, error) {
	return g, nil
}

// Describe names the source in log lines and errors
func (g StaticGrid) Describe() string {
	return "static grid"
}
