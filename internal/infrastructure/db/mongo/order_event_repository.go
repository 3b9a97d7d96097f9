package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const collectionOrderEvents = "order_events"

// OrderEventRepository implements ports.OrderEventRepository using MongoDB.
type OrderEventRepository struct {
	col *mongo.Collection
}

// NewOrderEventRepository creates a new OrderEventRepository.
func NewOrderEventRepository(db *mongo.Database) *OrderEventRepository {
	return &OrderEventRepository{col: db.Collection(collectionOrderEvents)}
}

var _ ports.OrderEventRepository = (*OrderEventRepository)(nil)

type orderEventDoc struct {
	OrderID     string    `bson:"order_id"`
	Field       string    `bson:"field"`
	Value       string    `bson:"value"`
	Actor       string    `bson:"actor"`
	Timestamp   time.Time `bson:"timestamp"`
	ProcessedAt time.Time `bson:"processed_at"`
}

// InsertEvent persists an audit event to the order_events collection.
func (r *OrderEventRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, orderEventDoc{
		OrderID:     event.OrderID,
		Field:       event.Field,
		Value:       event.Value,
		Actor:       event.Actor,
		Timestamp:   event.Timestamp.UTC(),
		ProcessedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder returns an order's events oldest first.
func (r *OrderEventRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	var docs []orderEventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode order events: %w", err)
	}

	out := make([]domain.OrderEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.OrderEvent{
			OrderID:   d.OrderID,
			Field:     d.Field,
			Value:     d.Value,
			Actor:     d.Actor,
			Timestamp: d.Timestamp.UTC(),
		})
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the order_events collection.
func (r *OrderEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
