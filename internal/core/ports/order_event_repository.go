package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// OrderEventRepository stores the order audit trail.
type OrderEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderEvent, error)
}

// OrderEventService persists one audit event.
type OrderEventService interface {
	Process(ctx context.Context, event domain.OrderEvent) error
}

// OrderEventPublisher hands audit events to the background dispatcher.
type OrderEventPublisher interface {
	Enqueue(event domain.OrderEvent)
}
