package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mistico-store/backend/internal/domain"
)

// fallbackProducts is served when the catalog backend is unreachable or
// empty, so the storefront never renders an empty grid. Mirrors the
// maintenance-mode list the frontend ships.
var fallbackProducts = []domain.Product{
	{
		ID:          "1",
		Name:        "Laptop Gaming",
		Description: "Laptop para gaming de alto rendimiento",
		Price:       1200,
		ImageURL:    "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=300&h=200&fit=crop",
		Category:    "electronics",
	},
	{
		ID:          "2",
		Name:        "Smartphone",
		Description: "Smartphone de última generación",
		Price:       599,
		ImageURL:    "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=200&fit=crop",
		Category:    "electronics",
	},
}

// FallbackSource wraps a Source and degrades to the built-in product list
// instead of failing when the backend errors or has no rows.
type FallbackSource struct {
	primary Source
	log     *slog.Logger
}

func NewFallbackSource(primary Source, log *slog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, log: log}
}

func (f *FallbackSource) ListAll(ctx context.Context) ([]domain.Product, error) {
	products, err := f.primary.ListAll(ctx)
	if err != nil {
		f.log.Warn("catalog unavailable, serving fallback products", "error", err)
		return fallbackProducts, nil
	}
	if len(products) == 0 {
		f.log.Warn("catalog empty, serving fallback products")
		return fallbackProducts, nil
	}
	return products, nil
}

func (f *FallbackSource) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := f.primary.GetByID(ctx, id)
	if err == nil {
		return product, nil
	}

	if errors.Is(err, ErrProductNotFound) {
		// A miss is only authoritative when the catalog has rows. An
		// empty catalog is the degraded state ListAll serves the
		// fallback list for, so ids from that list must resolve here
		// too or the grid would show products that cannot be added.
		products, listErr := f.primary.ListAll(ctx)
		if listErr == nil && len(products) > 0 {
			return nil, err
		}
		f.log.Warn("catalog empty, resolving product from fallback list", "product_id", id)
		return fallbackProduct(id)
	}

	f.log.Warn("catalog unavailable, resolving product from fallback list", "product_id", id, "error", err)
	return fallbackProduct(id)
}

func fallbackProduct(id string) (*domain.Product, error) {
	for _, p := range fallbackProducts {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
