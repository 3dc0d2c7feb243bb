package cart

import (
	"context"
	"errors"

	"github.com/mistico-store/backend/internal/domain"
)

var ErrLineNotFound = errors.New("cart line not found")

// Store defines the interface for cart line persistence.
// Consumers define this interface, not the MongoDB implementation.
//
// Lines are keyed by (userID, productID) with at most one line per pair.
// Deletes are idempotent; quantity updates on a missing line are not.
type Store interface {
	FindLine(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	CreateLine(ctx context.Context, line *domain.CartLine) error
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	DeleteLine(ctx context.Context, userID, lineID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
