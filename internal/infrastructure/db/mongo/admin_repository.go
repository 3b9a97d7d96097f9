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

const (
	collectionAdmins = "admins"

	adminIDIndex    = "admin_id_unique"
	adminEmailIndex = "email_unique"
)

type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins)}
}

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AdminID      string             `bson:"admin_id"`
	Email        []string           `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		AdminID:      d.AdminID,
		Emails:       d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, adminDoc{
		AdminID:      a.AdminID,
		Email:        a.Emails,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
	})
	if err != nil {
		switch {
		case duplicateIndex(err, adminIDIndex):
			return nil, domain.ErrAdminIDTaken
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrAdminEmailTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	created := *a
	created.ID = insertedID(res)
	return &created, nil
}

// FindByEmail matches any entry of the stored email list.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the named unique indexes Create relies on to tell
// an admin id clash from an email clash.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "admin_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName(adminIDIndex)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(adminEmailIndex)},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
