package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mistico-store/backend/internal/domain"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("cart_lines"),
	}
}

func (m *MongoStore) FindLine(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	var line domain.CartLine

	filter := bson.M{"user_id": userID, "product_id": productID}
	err := m.collection.FindOne(ctx, filter).Decode(&line)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to find cart line: %w", err)
	}

	return &line, nil
}

func (m *MongoStore) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	filter := bson.M{"user_id": userID}

	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []domain.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart lines: %w", err)
	}

	return lines, nil
}

func (m *MongoStore) CreateLine(ctx context.Context, line *domain.CartLine) error {
	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, line)
	if err != nil {
		return fmt.Errorf("failed to create cart line: %w", err)
	}

	return nil
}

func (m *MongoStore) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	filter := bson.M{"_id": lineID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"quantity":   quantity,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var line domain.CartLine
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return &line, nil
}

// DeleteLine is idempotent: deleting a line that does not exist is a no-op.
func (m *MongoStore) DeleteLine(ctx context.Context, userID, lineID string) error {
	filter := bson.M{"_id": lineID, "user_id": userID}

	_, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	return nil
}

func (m *MongoStore) DeleteAllForUser(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}

	_, err := m.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			// One line per (user, product) pair, enforced even when
			// concurrent adds race past the find-then-create check.
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
