package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/mistico-store/backend/internal/domain"
)

func setupTestStore(t *testing.T) (*MongoStore, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func newLine(userID, productID string, quantity int) *domain.CartLine {
	return &domain.CartLine{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		ProductName:     "Laptop Gaming",
		ProductPrice:    1200,
		ProductImageURL: "https://example.com/laptop.jpg",
	}
}

func TestFindLine_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	line, err := store.FindLine(context.Background(), "nobody", "1")
	assert.ErrorIs(t, err, ErrLineNotFound)
	assert.Nil(t, line)
}

func TestCreateLine_ThenFind(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	line := newLine("user123", "1", 3)
	require.NoError(t, store.CreateLine(ctx, line))

	assert.False(t, line.CreatedAt.IsZero())
	assert.False(t, line.UpdatedAt.IsZero())

	found, err := store.FindLine(ctx, "user123", "1")
	require.NoError(t, err)
	assert.Equal(t, line.ID, found.ID)
	assert.Equal(t, 3, found.Quantity)
	assert.Equal(t, "Laptop Gaming", found.ProductName)
	assert.Equal(t, float64(1200), found.ProductPrice)
}

func TestCreateLine_DuplicatePairRejected(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateLine(ctx, newLine("user123", "1", 1)))

	// Unique (user_id, product_id) index blocks a second line for the pair.
	err := store.CreateLine(ctx, newLine("user123", "1", 2))
	assert.Error(t, err)
}

func TestListLines(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateLine(ctx, newLine("user123", "1", 2)))
	require.NoError(t, store.CreateLine(ctx, newLine("user123", "2", 3)))
	require.NoError(t, store.CreateLine(ctx, newLine("other", "1", 1)))

	lines, err := store.ListLines(ctx, "user123")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestUpdateQuantity(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	line := newLine("user123", "1", 2)
	require.NoError(t, store.CreateLine(ctx, line))
	createdUpdatedAt := line.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	updated, err := store.UpdateQuantity(ctx, "user123", line.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)
	assert.True(t, updated.UpdatedAt.After(createdUpdatedAt))
}

func TestStoreUpdateQuantity_UnknownLine(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.UpdateQuantity(context.Background(), "user123", "missing", 5)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestUpdateQuantity_WrongUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	line := newLine("user123", "1", 2)
	require.NoError(t, store.CreateLine(ctx, line))

	_, err := store.UpdateQuantity(ctx, "other", line.ID, 5)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestDeleteLine_Idempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	line := newLine("user123", "1", 2)
	require.NoError(t, store.CreateLine(ctx, line))

	require.NoError(t, store.DeleteLine(ctx, "user123", line.ID))

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteLine(ctx, "user123", line.ID))

	_, err := store.FindLine(ctx, "user123", "1")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestDeleteAllForUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateLine(ctx, newLine("user123", "1", 2)))
	require.NoError(t, store.CreateLine(ctx, newLine("user123", "2", 1)))
	require.NoError(t, store.CreateLine(ctx, newLine("other", "1", 1)))

	require.NoError(t, store.DeleteAllForUser(ctx, "user123"))

	lines, err := store.ListLines(ctx, "user123")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Other users' carts are untouched, and clearing again is a no-op.
	others, err := store.ListLines(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, others, 1)
	assert.NoError(t, store.DeleteAllForUser(ctx, "user123"))
}
