package repositories

import (
	"context"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// InventoryRepository provides raw inventory rows
type InventoryRepository interface {
	GetStockTable(ctx context.Context) (*entities.StockTable, error)
}
