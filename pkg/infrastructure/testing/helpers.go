package testing

import (
	"context"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/memory"
)

// Key builds a full stock key
func Key(material, plant, subLocation, budgetElement string) entities.StockKey {
	return entities.StockKey{
		Material:      material,
		Plant:         plant,
		SubLocation:   subLocation,
		BudgetElement: budgetElement,
	}
}

// Request builds a transfer request and panics on invalid input
func Request(id string, key entities.StockKey, qty int64, status string) *entities.TransferRequest {
	req, err := entities.NewTransferRequest(id, 0, key, entities.NewQuantity(qty), status)
	if err != nil {
		panic(err)
	}
	return req
}

// Issued builds an already-issued request with the given actual quantity
func Issued(id string, key entities.StockKey, qty, actual int64) *entities.TransferRequest {
	req := Request(id, key, qty, "12")
	req.ActualQty = entities.NewQuantity(actual)
	return req
}

// StockTable builds a stock table carrying every dimension from key/quantity pairs
func StockTable(rows map[entities.StockKey]int64) *entities.StockTable {
	repo := memory.NewInventoryRepository()
	for key, qty := range rows {
		repo.AddStock(key, entities.NewQuantity(qty))
	}
	table, err := repo.GetStockTable(context.Background())
	if err != nil {
		panic(err)
	}
	return table
}

// BuildWarehouseTestData builds a two-plant warehouse with one request
// landing on each tier of the default hierarchy.
//
// Expected outcome in input order with the default hierarchy:
//
//	REQ-1  SATISFIED at sloc_wbs
//	REQ-2  SATISFIED at wbs
//	REQ-3  SATISFIED at plant
//	REQ-4  SATISFIED at area
//	REQ-5  UNSATISFIED
//	REQ-6  ALREADY_ISSUED_COMPLETE
//	REQ-7  ALREADY_ISSUED_PARTIAL
func BuildWarehouseTestData() (*memory.InventoryRepository, *memory.RequestRepository) {
	inventoryRepo := memory.NewInventoryRepository()
	requestRepo := memory.NewRequestRepository()

	inventoryRepo.AddStock(Key("MAT-100", "P100", "S01", "WBS-A"), entities.NewQuantity(10))
	inventoryRepo.AddStock(Key("MAT-100", "P100", "S02", "WBS-A"), entities.NewQuantity(5))
	inventoryRepo.AddStock(Key("MAT-100", "P100", "S01", "WBS-B"), entities.NewQuantity(4))
	inventoryRepo.AddStock(Key("MAT-100", "P200", "S01", "WBS-C"), entities.NewQuantity(20))
	inventoryRepo.AddStock(Key("MAT-200", "P100", "S01", "WBS-A"), entities.ZeroQuantity)

	requests := []*entities.TransferRequest{
		Request("REQ-1", Key("MAT-100", "P100", "S01", "WBS-A"), 8, "1"),
		Request("REQ-2", Key("MAT-100", "P100", "S01", "WBS-A"), 5, "5"),
		Request("REQ-3", Key("MAT-100", "P100", "S02", "WBS-A"), 12, "1"),
		Request("REQ-4", Key("MAT-100", "P100", "S01", "WBS-A"), 30, "9"),
		Request("REQ-5", Key("MAT-200", "P100", "S01", "WBS-A"), 1, "1"),
		Issued("REQ-6", Key("MAT-100", "P100", "S01", "WBS-B"), 4, 4),
		Issued("REQ-7", Key("MAT-100", "P100", "S01", "WBS-B"), 4, 2),
	}
	if err := requestRepo.LoadRequests(requests); err != nil {
		panic(err)
	}

	return inventoryRepo, requestRepo
}
