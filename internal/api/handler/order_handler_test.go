package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const orderPayload = `{"phoneNumber":"+14155550100","email":"ada@example.com","products":[{"productId":"p1","quantity":2}],"totalAmount":49}`

func TestOrderHandler_Place_Created(t *testing.T) {
	svc := &stubOrderService{
		placeFn: func(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			if in.CustomerID != "c1" {
				t.Fatalf("customer must come from the principal, got %q", in.CustomerID)
			}
			if in.IdempotencyKey != "key-1" {
				t.Fatalf("expected idempotency key, got %q", in.IdempotencyKey)
			}
			if len(in.Products) != 1 || in.Products[0].Quantity != 2 {
				t.Fatalf("unexpected products: %+v", in.Products)
			}
			return &ports.PlaceOrderResult{Order: &domain.Order{ID: "o1", Status: domain.OrderPending}}, nil
		},
	}
	h := NewOrderHandler(svc)

	c, rec := jsonContext(http.MethodPost, "/api/orders/orders", orderPayload)
	c.Request().Header.Set(HeaderIdempotencyKey, " key-1 ")
	if err := h.Place(asCustomer(c, "c1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp orderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Order received successfully" || resp.Order.ID != "o1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Place_ReplayedIsOK(t *testing.T) {
	svc := &stubOrderService{
		placeFn: func(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			return &ports.PlaceOrderResult{Order: &domain.Order{ID: "o1"}, Replayed: true}, nil
		},
	}
	h := NewOrderHandler(svc)

	c, rec := jsonContext(http.MethodPost, "/api/orders/orders", orderPayload)
	if err := h.Place(asCustomer(c, "c1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Place_IgnoresBodyCustomer(t *testing.T) {
	svc := &stubOrderService{
		placeFn: func(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			if in.CustomerID != "c1" {
				t.Fatalf("body must not pick the customer, got %q", in.CustomerID)
			}
			return &ports.PlaceOrderResult{Order: &domain.Order{ID: "o1"}}, nil
		},
	}
	h := NewOrderHandler(svc)

	c, _ := jsonContext(http.MethodPost, "/api/orders/orders", `{"customerId":"c2","email":"a@b.co"}`)
	if err := h.Place(asCustomer(c, "c1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOrderHandler_Place_Unauthenticated(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	c, _ := jsonContext(http.MethodPost, "/api/orders/orders", orderPayload)
	if err := h.Place(c); statusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestOrderHandler_Get_ScopedToPrincipal(t *testing.T) {
	svc := &stubOrderService{
		getFn: func(ctx context.Context, id, customerID string) (*domain.Order, error) {
			if customerID != "c1" {
				t.Fatalf("lookup must be scoped, got %q", customerID)
			}
			return nil, domain.ErrOrderNotFound
		},
	}
	h := NewOrderHandler(svc)

	c, _ := jsonContext(http.MethodGet, "/api/orders/orders/o9", "")
	c.SetParamNames("id")
	c.SetParamValues("o9")
	if err := h.Get(asCustomer(c, "c1")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderHandler_MyOrders(t *testing.T) {
	svc := &stubOrderService{
		listMineFn: func(ctx context.Context, customerID string) ([]*domain.Order, error) {
			return []*domain.Order{{ID: "o1", CustomerID: customerID}, {ID: "o2", CustomerID: customerID}}, nil
		},
	}
	h := NewOrderHandler(svc)

	c, rec := jsonContext(http.MethodGet, "/api/orders/my-orders", "")
	if err := h.MyOrders(asCustomer(c, "c1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &orders); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(orders) != 2 || orders[1].CustomerID != "c1" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}
