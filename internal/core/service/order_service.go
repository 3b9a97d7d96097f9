package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type orderService struct {
	orders    ports.OrderRepository
	products  ports.ProductRepository
	customers ports.CustomerRepository
	events    ports.OrderEventRepository
	publisher ports.OrderEventPublisher
	idem      ports.IdempotencyStore
	log       zerolog.Logger
	now       func() time.Time
}

// NewOrderService returns an OrderService implementation. idem may be nil, in
// which case Idempotency-Key headers are ignored.
func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	customers ports.CustomerRepository,
	events ports.OrderEventRepository,
	publisher ports.OrderEventPublisher,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) ports.OrderService {
	return &orderService{
		orders:    orders,
		products:  products,
		customers: customers,
		events:    events,
		publisher: publisher,
		idem:      idem,
		log:       log,
		now:       time.Now,
	}
}

func (s *orderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	// 1. The authenticated customer must still exist.
	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	// 2. Replay a previous order for the same Idempotency-Key.
	if replay := s.replay(ctx, in); replay != nil {
		return &ports.PlaceOrderResult{Order: replay, Replayed: true}, nil
	}

	// 3. Resolve every product and freeze its current price.
	items := make([]domain.OrderItem, 0, len(in.Products))
	for _, line := range in.Products {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("products", "Product not found: "+line.ProductID)
			}
			return nil, fmt.Errorf("place order: %w", err)
		}
		items = append(items, domain.OrderItem{
			ProductID:       product.ID,
			Product:         product,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
		})
	}

	now := s.now().UTC()
	created, err := s.orders.Create(ctx, &domain.Order{
		OrderID:       uuid.NewString(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Products:      items,
		TotalAmount:   in.TotalAmount,
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentPending,
		PhoneNumber:   in.PhoneNumber,
		Email:         in.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if s.idem != nil && in.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, customer.ID, in.IdempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Str("order_id", created.OrderID).Msg("could not remember idempotency key")
		}
	}

	s.log.Info().
		Str("order_id", created.OrderID).
		Str("customer_id", customer.ID).
		Int("items", len(items)).
		Float64("total", created.TotalAmount).
		Msg("order placed")
	return &ports.PlaceOrderResult{Order: created}, nil
}

// replay returns the order an earlier request with the same key produced, or
// nil. Store failures are logged and treated as a miss.
func (s *orderService) replay(ctx context.Context, in ports.PlaceOrderInput) *domain.Order {
	if s.idem == nil || in.IdempotencyKey == "" {
		return nil
	}
	orderID, found, err := s.idem.Lookup(ctx, in.CustomerID, in.IdempotencyKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency lookup failed, placing order")
		return nil
	}
	if !found {
		return nil
	}
	order, err := s.orders.FindByID(ctx, orderID, in.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("remembered order not found, placing order")
		return nil
	}
	s.populateProducts(ctx, order)
	s.log.Info().Str("order_id", order.OrderID).Msg("order replayed for idempotency key")
	return order
}

func (s *orderService) GetForCustomer(ctx context.Context, id, customerID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	s.populateProducts(ctx, order)
	return order, nil
}

func (s *orderService) ListForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.populateProducts(ctx, orders...)
	return orders, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	s.populateCustomers(ctx, orders...)
	return orders, nil
}

func (s *orderService) GetDetail(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	s.populateCustomers(ctx, order)
	s.populateProducts(ctx, order)

	history, err := s.events.ListByOrder(ctx, order.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("could not load order history")
	} else {
		order.History = history
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id, status, actor string) (*domain.Order, error) {
	next := domain.OrderStatus(strings.TrimSpace(status))
	if next == "" {
		return nil, domain.NewValidationError("status", "Status is required")
	}
	if !next.Valid() {
		return nil, domain.NewValidationError("status", "status must be one of: pending processing completed cancelled")
	}

	updated, err := s.orders.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.record(updated, domain.OrderFieldStatus, string(next), actor)
	return updated, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id, status, actor string) (*domain.Order, error) {
	next := domain.PaymentStatus(strings.TrimSpace(status))
	if next == "" {
		return nil, domain.NewValidationError("paymentStatus", "Payment status is required")
	}
	if !next.Valid() {
		return nil, domain.NewValidationError("paymentStatus", "paymentStatus must be one of: pending completed failed")
	}

	updated, err := s.orders.UpdatePaymentStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.record(updated, domain.OrderFieldPaymentStatus, string(next), actor)
	return updated, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("order deleted")
	return nil
}

// MonthlySales reports the current calendar year, one entry per month that
// had non-cancelled orders.
func (s *orderService) MonthlySales(ctx context.Context) ([]domain.MonthlySales, error) {
	rows, err := s.orders.MonthlySales(ctx, s.now().UTC().Year())
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	out := make([]domain.MonthlySales, 0, len(rows))
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		out = append(out, domain.MonthlySales{Name: monthNames[row.Month-1], Sales: row.Sales})
	}
	return out, nil
}

func (s *orderService) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	counts, err := s.orders.StatusDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	return counts, nil
}

func (s *orderService) record(order *domain.Order, field, value, actor string) {
	s.log.Info().Str("order_id", order.OrderID).Str(field, value).Str("actor", actor).Msg("order updated")
	if s.publisher == nil {
		return
	}
	s.publisher.Enqueue(domain.OrderEvent{
		OrderID:   order.ID,
		Field:     field,
		Value:     value,
		Actor:     actor,
		Timestamp: s.now().UTC(),
	})
}

// populateProducts attaches product details to order lines. Lines whose
// product has since been deleted keep a nil Product.
func (s *orderService) populateProducts(ctx context.Context, orders ...*domain.Order) {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, id := range o.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not load order products")
		return
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, o := range orders {
		for i := range o.Products {
			o.Products[i].Product = byID[o.Products[i].ProductID]
		}
	}
}

func (s *orderService) populateCustomers(ctx context.Context, orders ...*domain.Order) {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		if _, ok := seen[o.CustomerID]; !ok && o.CustomerID != "" {
			seen[o.CustomerID] = struct{}{}
			ids = append(ids, o.CustomerID)
		}
	}
	if len(ids) == 0 {
		return
	}

	customers, err := s.customers.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not load order customers")
		return
	}
	byID := make(map[string]*domain.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	for _, o := range orders {
		o.Customer = byID[o.CustomerID]
	}
}
