package repositories

import (
	"context"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// RequestRepository provides the issue-request batch in its original order
type RequestRepository interface {
	GetRequests(ctx context.Context) ([]*entities.TransferRequest, error)
}
