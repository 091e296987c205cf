package memory

import (
	"context"
	"testing"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

func TestRequestRepository_LoadAndGet(t *testing.T) {
	repo := NewRequestRepository()

	key := entities.StockKey{Material: "MAT-1", Plant: "P100"}
	first, _ := entities.NewTransferRequest("20", 7, key, entities.NewQuantity(1), "1")
	second, _ := entities.NewTransferRequest("10", 7, key, entities.NewQuantity(2), "5")

	if err := repo.LoadRequests([]*entities.TransferRequest{first, second}); err != nil {
		t.Fatalf("Failed to load requests: %v", err)
	}

	requests, err := repo.GetRequests(context.Background())
	if err != nil {
		t.Fatalf("Failed to get requests: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(requests))
	}

	// Arrival order is kept and positions are reassigned.
	if requests[0].ID != "20" || requests[1].ID != "10" {
		t.Errorf("Expected arrival order 20, 10, got %s, %s", requests[0].ID, requests[1].ID)
	}
	if requests[0].Position != 0 || requests[1].Position != 1 {
		t.Errorf("Expected positions 0 and 1, got %d and %d", requests[0].Position, requests[1].Position)
	}

	// Callers get copies.
	requests[0].Status = "12"
	again, _ := repo.GetRequests(context.Background())
	if again[0].Status != "1" {
		t.Errorf("Expected stored status to be unaffected, got %s", again[0].Status)
	}
	if first.Position != 7 {
		t.Errorf("Expected loaded request to be unaffected, got position %d", first.Position)
	}
}
