package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderItemDoc struct {
	ProductID       primitive.ObjectID `bson:"product_id"`
	Quantity        int                `bson:"quantity"`
	PriceAtPurchase float64            `bson:"price_at_purchase"`
}

type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OrderID       string             `bson:"order_id"`
	CustomerID    primitive.ObjectID `bson:"customer_id"`
	CustomerName  string             `bson:"customer_name"`
	Products      []orderItemDoc     `bson:"products"`
	TotalAmount   float64            `bson:"total_amount"`
	Status        string             `bson:"status"`
	PaymentStatus string             `bson:"payment_status"`
	PhoneNumber   string             `bson:"phone_number"`
	Email         string             `bson:"email"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *orderDoc) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Products))
	for _, it := range d.Products {
		items = append(items, domain.OrderItem{
			ProductID:       it.ProductID.Hex(),
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	return &domain.Order{
		ID:            d.ID.Hex(),
		OrderID:       d.OrderID,
		CustomerID:    d.CustomerID.Hex(),
		CustomerName:  d.CustomerName,
		Products:      items,
		TotalAmount:   d.TotalAmount,
		Status:        domain.OrderStatus(d.Status),
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		PhoneNumber:   d.PhoneNumber,
		Email:         d.Email,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	customerID, ok := objectID(o.CustomerID)
	if !ok {
		return nil, fmt.Errorf("insert order: malformed customer id %q", o.CustomerID)
	}
	items := make([]orderItemDoc, 0, len(o.Products))
	for _, it := range o.Products {
		pid, ok := objectID(it.ProductID)
		if !ok {
			return nil, fmt.Errorf("insert order: malformed product id %q", it.ProductID)
		}
		items = append(items, orderItemDoc{ProductID: pid, Quantity: it.Quantity, PriceAtPurchase: it.PriceAtPurchase})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, orderDoc{
		OrderID:       o.OrderID,
		CustomerID:    customerID,
		CustomerName:  o.CustomerName,
		Products:      items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PhoneNumber:   o.PhoneNumber,
		Email:         o.Email,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	created.ID = insertedID(res)
	return &created, nil
}

// FindByID retrieves an order. When customerID is non-empty, an additional
// filter by customer_id is applied.
func (r *OrderRepository) FindByID(ctx context.Context, id, customerID string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	filter := bson.M{"_id": oid}
	if customerID != "" {
		cid, ok := objectID(customerID)
		if !ok {
			return nil, domain.ErrOrderNotFound
		}
		filter["customer_id"] = cid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	cid, ok := objectID(customerID)
	if !ok {
		return []*domain.Order{}, nil
	}
	return r.find(ctx, bson.M{"customer_id": cid})
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	out := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.set(ctx, id, bson.M{"status": string(status)})
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	return r.set(ctx, id, bson.M{"payment_status": string(status)})
}

func (r *OrderRepository) set(ctx context.Context, id string, fields bson.M) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// MonthlySales sums total_amount per month of year, skipping cancelled orders.
func (r *OrderRepository) MonthlySales(ctx context.Context, year int) ([]ports.MonthTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":     bson.M{"$ne": string(domain.OrderCancelled)},
			"created_at": bson.M{"$gte": from, "$lt": from.AddDate(1, 0, 0)},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$created_at"},
			"sales": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}

	var rows []struct {
		Month int     `bson:"_id"`
		Sales float64 `bson:"sales"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	out := make([]ports.MonthTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MonthTotal{Month: row.Month, Sales: row.Sales})
	}
	return out, nil
}

func (r *OrderRepository) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "value": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate statuses: %w", err)
	}

	var rows []struct {
		Name  string `bson:"_id"`
		Value int    `bson:"value"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode statuses: %w", err)
	}
	out := make([]domain.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StatusCount{Name: row.Name, Value: row.Value})
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
