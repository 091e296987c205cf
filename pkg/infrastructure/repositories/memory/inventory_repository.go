package memory

import (
	"context"
	"fmt"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory storage
type InventoryRepository struct {
	columns []entities.Dimension
	records []entities.StockRecord
}

// NewInventoryRepository creates a repository whose rows carry the given dimension columns
func NewInventoryRepository(columns ...entities.Dimension) *InventoryRepository {
	if len(columns) == 0 {
		columns = entities.AllDimensions
	}
	return &InventoryRepository{
		columns: append([]entities.Dimension(nil), columns...),
		records: []entities.StockRecord{},
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadStockRecords loads inventory rows into the repository
func (r *InventoryRepository) LoadStockRecords(records []*entities.StockRecord) error {
	for _, record := range records {
		if err := r.SaveStockRecord(record); err != nil {
			return err
		}
	}
	return nil
}

// SaveStockRecord adds one inventory row
func (r *InventoryRepository) SaveStockRecord(record *entities.StockRecord) error {
	if record == nil {
		return fmt.Errorf("stock record cannot be nil")
	}
	r.records = append(r.records, *record)
	return nil
}

// AddStock adds a row for a full key
func (r *InventoryRepository) AddStock(key entities.StockKey, unrestricted entities.Quantity) {
	r.records = append(r.records, entities.StockRecord{
		Material:      key.Material,
		Plant:         key.Plant,
		SubLocation:   key.SubLocation,
		BudgetElement: key.BudgetElement,
		Unrestricted:  unrestricted,
	})
}

// GetStockTable returns a copy of the stored rows
func (r *InventoryRepository) GetStockTable(ctx context.Context) (*entities.StockTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entities.StockTable{
		Columns: append([]entities.Dimension(nil), r.columns...),
		Records: append([]entities.StockRecord(nil), r.records...),
	}, nil
}

// Len returns the number of stored rows
func (r *InventoryRepository) Len() int {
	return len(r.records)
}
