package catalog

import (
	"context"
	"errors"

	"github.com/mistico-store/backend/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Source supplies product records for listing, validation and snapshotting.
// Read path only; the catalog is seeded externally.
type Source interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
}
