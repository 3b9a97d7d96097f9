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
)

const collectionCustomers = "customers"

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

type customerDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID   string             `bson:"customer_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	PhoneNumber  string             `bson:"phone_number"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *customerDoc) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:           d.ID.Hex(),
		CustomerID:   d.CustomerID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		PhoneNumber:  d.PhoneNumber,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := customerDoc{
		CustomerID:   c.CustomerID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		PhoneNumber:  c.PhoneNumber,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	created := *c
	created.ID = insertedID(res)
	return &created, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Customer, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	return r.find(ctx, bson.M{})
}

func (r *CustomerRepository) find(ctx context.Context, filter bson.M) ([]*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	var docs []customerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}

	out := make([]*domain.Customer, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update sets only the attributes present in changes.
func (r *CustomerRepository) Update(ctx context.Context, id string, ch domain.CustomerChanges) (*domain.Customer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": ch.UpdatedAt}
	if ch.Name != nil {
		set["name"] = *ch.Name
	}
	if ch.Email != nil {
		set["email"] = *ch.Email
	}
	if ch.PhoneNumber != nil {
		set["phone_number"] = *ch.PhoneNumber
	}
	if ch.PasswordHash != nil {
		set["password_hash"] = *ch.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc customerDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrCustomerNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the customers collection.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
