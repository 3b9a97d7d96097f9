package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautyshop/storefront-api/internal/api/handler"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
	"github.com/beautyshop/storefront-api/internal/pkg/token"
)

type routerCustomers struct{ ports.CustomerService }

func (routerCustomers) Get(_ context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Name: "Ada"}, nil
}

func (routerCustomers) List(context.Context) ([]*domain.Customer, error) {
	return []*domain.Customer{}, nil
}

type routerProducts struct{ ports.ProductService }

func (routerProducts) List(context.Context, ports.ProductFilter) ([]*domain.Product, error) {
	return []*domain.Product{{ID: "p1", Name: "Rose Serum"}}, nil
}

type routerOrders struct{ ports.OrderService }

func (routerOrders) StatusDistribution(context.Context) ([]domain.StatusCount, error) {
	return []domain.StatusCount{{Name: "pending", Value: 2}}, nil
}

func newTestRouter(t *testing.T, origins []string) (*echo.Echo, *token.Service) {
	t.Helper()
	tokens, err := token.NewService("router-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		Log:            zerolog.Nop(),
		Tokens:         tokens,
		Customers:      routerCustomers{},
		Products:       routerProducts{},
		Orders:         routerOrders{},
		Health:         handler.NewHealthHandler(nil, nil),
		AllowedOrigins: origins,
		Registerer:     reg,
		Gatherer:       reg,
	})
	return e, tokens
}

func serve(e *echo.Echo, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicCatalog(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	for _, path := range []string{"/api/products", "/api/products/products", "/api/products/shop/products"} {
		rec := serve(e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Rose Serum", path)
	}
}

func TestRouter_CustomerGate(t *testing.T) {
	e, tokens := newTestRouter(t, nil)

	rec := serve(e, http.MethodGet, "/api/customers/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	raw, err := tokens.IssueCustomer("c1")
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/api/customers/me", raw)
	require.Equal(t, http.StatusOK, rec.Code)

	var customer domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
	assert.Equal(t, "c1", customer.ID)
}

func TestRouter_AdminGroupsRequireAdminToken(t *testing.T) {
	e, tokens := newTestRouter(t, nil)

	customerToken, err := tokens.IssueCustomer("c1")
	require.NoError(t, err)
	adminToken, err := tokens.IssueAdmin("a1", "superadmin")
	require.NoError(t, err)

	for _, path := range []string{
		"/api/admin/customers",
		"/api/admin/customers/admin/customers",
		"/api/admin/orders/admin/order-status-data",
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, path, "").Code, path)
		assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, path, customerToken).Code, path)
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, path, adminToken).Code, path)
	}
}

func TestRouter_AdminTokenRejectedByCustomerGate(t *testing.T) {
	e, tokens := newTestRouter(t, nil)

	adminToken, err := tokens.IssueAdmin("a1", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/api/orders/my-orders", adminToken).Code)
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := serve(e, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health", "").Code)

	serve(e, http.MethodGet, "/api/products", "")
	rec := serve(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestRouter_CORSPreflight(t *testing.T) {
	e, _ := newTestRouter(t, []string{"http://localhost:8080"})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders/orders", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:8080")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), handler.HeaderIdempotencyKey)
}
