package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

func duplicateKeyResponse(index string) bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: storefront.x index: " + index + " dup key",
	})
}

func TestCustomerRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), &domain.Customer{Email: "ada@example.com", PasswordHash: "h"})
		require.NoError(mt, err)
		_, ok := objectID(got.ID)
		assert.True(mt, ok, "expected hex object id, got %q", got.ID)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse("email_1"))

		_, err := repo.Create(context.Background(), &domain.Customer{Email: "ada@example.com"})
		assert.Equal(mt, domain.ErrCustomerExists, err)
	})

	mt.Run("find by email decodes", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		oid := primitive.NewObjectID()
		created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.customers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "customer_id", Value: "uuid-1"},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password_hash", Value: "$2a$10$hash"},
			{Key: "phone_number", Value: "+15551234567"},
			{Key: "created_at", Value: created},
		}))

		got, err := repo.FindByEmail(context.Background(), "ada@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), got.ID)
		assert.Equal(mt, "$2a$10$hash", got.PasswordHash)
		assert.True(mt, created.Equal(got.CreatedAt))
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.customers", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.True(mt, errors.Is(err, domain.ErrNotFound))
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-hex")
		assert.Equal(mt, domain.ErrCustomerNotFound, err)
		assert.Equal(mt, domain.ErrCustomerNotFound, repo.Delete(context.Background(), "not-hex"))
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		name := "Ada"
		_, err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), domain.CustomerChanges{Name: &name})
		assert.Equal(mt, domain.ErrCustomerNotFound, err)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewCustomerRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.Equal(mt, domain.ErrCustomerNotFound, err)
	})
}

func TestAdminRepository_DuplicateMapping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("admin id taken", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse(adminIDIndex))

		_, err := repo.Create(context.Background(), &domain.Admin{AdminID: "12345", Emails: []string{"a@shop.com"}})
		assert.Equal(mt, domain.ErrAdminIDTaken, err)
	})

	mt.Run("email taken", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse(adminEmailIndex))

		_, err := repo.Create(context.Background(), &domain.Admin{AdminID: "12345", Emails: []string{"a@shop.com"}})
		assert.Equal(mt, domain.ErrAdminEmailTaken, err)
	})

	mt.Run("find by email decodes list", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.admins", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "admin_id", Value: "01234"},
			{Key: "email", Value: bson.A{"a@shop.com", "b@shop.com"}},
			{Key: "role", Value: "superadmin"},
		}))

		got, err := repo.FindByEmail(context.Background(), "b@shop.com")
		require.NoError(mt, err)
		assert.Equal(mt, "01234", got.AdminID)
		assert.Equal(mt, []string{"a@shop.com", "b@shop.com"}, got.Emails)
		assert.Equal(mt, domain.RoleSuperAdmin, got.Role)
	})
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("featured decodes aggregation", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Serum"}, {Key: "category", Value: "skincare"}, {Key: "stock", Value: 3}, {Key: "price", Value: 20}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Tint"}, {Key: "category", Value: "makeup"}, {Key: "stock", Value: 1}, {Key: "price", Value: 7.5}},
		))

		got, err := repo.Featured(context.Background(), 3)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, float64(20), got[0].Price)
		assert.NotNil(mt, got[0].Images)
	})

	mt.Run("list in stock", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch))

		got, err := repo.List(context.Background(), ports.ProductFilter{InStockOnly: true, Category: domain.CategoryMakeup})
		require.NoError(mt, err)
		assert.Empty(mt, got)
	})
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create rejects malformed product id", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.Order{
			CustomerID: primitive.NewObjectID().Hex(),
			Products:   []domain.OrderItem{{ProductID: "nope", Quantity: 1}},
		})
		assert.Error(mt, err)
	})

	mt.Run("scoped lookup with foreign customer id", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.orders", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		assert.Equal(mt, domain.ErrOrderNotFound, err)
	})

	mt.Run("monthly sales", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.orders", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(1)}, {Key: "sales", Value: 120.5}},
			bson.D{{Key: "_id", Value: int32(3)}, {Key: "sales", Value: 40.0}},
		))

		got, err := repo.MonthlySales(context.Background(), 2026)
		require.NoError(mt, err)
		assert.Equal(mt, []ports.MonthTotal{{Month: 1, Sales: 120.5}, {Month: 3, Sales: 40}}, got)
	})

	mt.Run("status distribution", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.orders", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "completed"}, {Key: "value", Value: int32(4)}},
			bson.D{{Key: "_id", Value: "pending"}, {Key: "value", Value: int32(2)}},
		))

		got, err := repo.StatusDistribution(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []domain.StatusCount{{Name: "completed", Value: 4}, {Name: "pending", Value: 2}}, got)
	})

	mt.Run("update status missing", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), domain.OrderCompleted)
		assert.Equal(mt, domain.ErrOrderNotFound, err)
	})
}

func TestOrderEventRepository_ListByOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes events", func(mt *mtest.T) {
		repo := NewOrderEventRepository(mt.DB)
		ts := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.order_events", mtest.FirstBatch, bson.D{
			{Key: "order_id", Value: "o1"},
			{Key: "field", Value: "status"},
			{Key: "value", Value: "completed"},
			{Key: "actor", Value: "a1"},
			{Key: "timestamp", Value: ts},
		}))

		got, err := repo.ListByOrder(context.Background(), "o1")
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "completed", got[0].Value)
		assert.True(mt, ts.Equal(got[0].Timestamp))
	})
}
