package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/mistico-store/backend/internal/cache"
	"github.com/mistico-store/backend/internal/cart"
)

// CheckoutConsumer empties a user's cart when their order completes.
// Checkout itself lives outside this backend; only the completion event
// reaches us.
type CheckoutConsumer struct {
	store  cart.Store
	cache  cache.CartCache
	reader *kafka.Reader
	log    *slog.Logger
}

func New(store cart.Store, cartCache cache.CartCache, log *slog.Logger, brokers ...string) *CheckoutConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "checkout-completed",
		GroupID:  "cart-backend",
		MaxBytes: 10e6, // 10MB
	})
	return &CheckoutConsumer{
		store:  store,
		cache:  cartCache,
		reader: reader,
		log:    log,
	}
}

func (c *CheckoutConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				c.log.Error("failed to read checkout message", "error", err)
			}
			continue
		}

		c.handleMessage(ctx, m.Value)
	}
}

func (c *CheckoutConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error("failed to close kafka reader", "error", err)
	}
}

type checkoutCompleted struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

func (c *CheckoutConsumer) handleMessage(ctx context.Context, value []byte) {
	var event checkoutCompleted
	if err := json.Unmarshal(value, &event); err != nil {
		c.log.Error("failed to parse checkout message", "error", err)
		return
	}
	if event.UserID == "" {
		c.log.Error("checkout message missing user_id")
		return
	}

	if err := c.store.DeleteAllForUser(ctx, event.UserID); err != nil {
		c.log.Error("failed to clear cart after checkout", "user_id", event.UserID, "error", err)
		return
	}

	if err := c.cache.Delete(ctx, event.UserID); err != nil {
		c.log.Warn("failed to invalidate cart cache after checkout", "user_id", event.UserID, "error", err)
	}

	c.log.Info("cart cleared after checkout", "user_id", event.UserID, "order_id", event.OrderID)
}
