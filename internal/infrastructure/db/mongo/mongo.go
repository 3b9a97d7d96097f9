package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

var (
	_ ports.CustomerRepository = (*CustomerRepository)(nil)
	_ ports.AdminRepository    = (*AdminRepository)(nil)
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.OrderRepository    = (*OrderRepository)(nil)
)

// ErrUnreachable is returned by Connect when the client was built but the
// server did not answer the initial ping.
var ErrUnreachable = errors.New("mongo unreachable")

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect builds a MongoDB client and selects the database. When the server
// does not answer the ping the client and database are still returned along
// with an error wrapping ErrUnreachable; the driver keeps trying to reach the
// server in the background and requests fail until it does.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return client, db, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return client, db, nil
}

// EnsureIndexes creates the unique and lookup indexes every collection relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	for _, repo := range []indexer{
		NewCustomerRepository(db),
		NewAdminRepository(db),
		NewProductRepository(db),
		NewOrderRepository(db),
		NewOrderEventRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// objectID parses a hex id. Malformed ids are reported as not found by callers.
func objectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}

func objectIDs(hexes []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, ok := objectID(h); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func insertedID(res *mongo.InsertOneResult) string {
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex()
	}
	return ""
}

// duplicateIndex reports whether err is a duplicate key error on the named index.
func duplicateIndex(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}
