package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

type orderEventService struct {
	repo ports.OrderEventRepository
	log  zerolog.Logger
}

// NewOrderEventService returns an OrderEventService implementation.
func NewOrderEventService(repo ports.OrderEventRepository, log zerolog.Logger) ports.OrderEventService {
	return &orderEventService{repo: repo, log: log}
}

// Process validates and persists a single audit event.
func (s *orderEventService) Process(ctx context.Context, event domain.OrderEvent) error {
	if event.OrderID == "" || event.Field == "" {
		return domain.NewValidationError("event", "order event needs an order id and a field")
	}
	if event.Actor == "" {
		event.Actor = "unknown"
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("process order event: %w", err)
	}

	s.log.Debug().
		Str("order_id", event.OrderID).
		Str("field", event.Field).
		Str("value", event.Value).
		Msg("order event recorded")
	return nil
}
