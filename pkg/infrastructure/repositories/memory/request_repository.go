package memory

import (
	"context"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/domain/repositories"
)

// RequestRepository provides in-memory request storage
type RequestRepository struct {
	requests []entities.TransferRequest
}

// NewRequestRepository creates a new in-memory request repository
func NewRequestRepository() *RequestRepository {
	return &RequestRepository{
		requests: []entities.TransferRequest{},
	}
}

// Verify interface compliance
var _ repositories.RequestRepository = (*RequestRepository)(nil)

// LoadRequests appends requests, assigning positions in arrival order
func (r *RequestRepository) LoadRequests(requests []*entities.TransferRequest) error {
	for _, req := range requests {
		stored := *req
		stored.Position = len(r.requests)
		r.requests = append(r.requests, stored)
	}
	return nil
}

// GetRequests returns copies of all requests in their original order
func (r *RequestRepository) GetRequests(ctx context.Context) ([]*entities.TransferRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	requests := make([]*entities.TransferRequest, len(r.requests))
	for i := range r.requests {
		req := r.requests[i]
		requests[i] = &req
	}
	return requests, nil
}
