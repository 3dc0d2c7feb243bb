package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mistico-store/backend/internal/cache"
	"github.com/mistico-store/backend/internal/catalog"
	"github.com/mistico-store/backend/internal/domain"
)

var ErrUnauthenticated = errors.New("no authenticated user")

// Service orchestrates catalog lookups and cart store mutations.
//
// Adding a product that is already in the cart increments the existing
// line instead of rejecting. Cart totals use the price snapshot captured
// when the line was created, never a live catalog lookup.
type Service struct {
	store   Store
	catalog catalog.Source
	cache   cache.CartCache
	log     *slog.Logger
	sfg     singleflight.Group // prevents cache stampede on GetCart
}

func NewService(store Store, catalogSource catalog.Source, cartCache cache.CartCache, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalogSource,
		cache:   cartCache,
		log:     log,
	}
}

// AddToCart creates a line for (userID, productID) or increments the
// existing one. The product must resolve against the catalog; its name,
// price and image are snapshotted onto the line at creation.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	existing, err := s.store.FindLine(ctx, userID, productID)
	if err != nil && !errors.Is(err, ErrLineNotFound) {
		return nil, fmt.Errorf("failed to look up cart line: %w", err)
	}

	var line *domain.CartLine
	if existing != nil {
		line, err = s.store.UpdateQuantity(ctx, userID, existing.ID, existing.Quantity+quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to increment cart line: %w", err)
		}
	} else {
		snapshot := product.Snapshot()
		line = &domain.CartLine{
			ID:              uuid.NewString(),
			UserID:          userID,
			ProductID:       productID,
			Quantity:        quantity,
			ProductName:     snapshot.Name,
			ProductPrice:    snapshot.Price,
			ProductImageURL: snapshot.ImageURL,
		}
		if err := s.store.CreateLine(ctx, line); err != nil {
			return nil, fmt.Errorf("failed to create cart line: %w", err)
		}
	}

	s.invalidateCache(userID)
	return line, nil
}

// UpdateQuantity sets the quantity on a line. A quantity below 1 removes
// the line instead; no line persists with quantity < 1.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if quantity < 1 {
		if err := s.RemoveLine(ctx, userID, lineID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	line, err := s.store.UpdateQuantity(ctx, userID, lineID, quantity)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	s.invalidateCache(userID)
	return line, nil
}

// RemoveLine deletes a line. Removing a line that does not exist is a no-op.
func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.store.DeleteLine(ctx, userID, lineID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	s.invalidateCache(userID)
	return nil
}

// ClearCart deletes every line for the user. Idempotent.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.store.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.invalidateCache(userID)
	return nil
}

// GetCart returns the user's cart view: lines, snapshot-price total and
// unit count. Reads go through the cache; a miss falls back to the store.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Cache failure degrades to the store, never surfaces.
			s.log.Warn("cart cache get failed", "user_id", userID, "error", err)
		}

		lines, err := s.store.ListLines(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cart lines: %w", err)
		}

		cart := domain.NewCart(userID, lines)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, userID, cart); err != nil {
				s.log.Warn("cart cache set failed", "user_id", userID, "error", err)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn("cart cache invalidate failed", "user_id", userID, "error", err)
	}
}
