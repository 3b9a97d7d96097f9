package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// HeaderIdempotencyKey lets a client retry order placement safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler serves the authenticated customer's orders.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// Place creates an order for the authenticated customer. A repeated
// Idempotency-Key returns the order created by the first request with 200.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Retry key"
// @Param        body             body      ports.PlaceOrderInput  true   "Order"
// @Success      201              {object}  orderResponse
// @Success      200              {object}  orderResponse
// @Failure      400              {object}  api.ErrorResponse
// @Failure      401              {object}  api.ErrorResponse
// @Failure      404              {object}  api.ErrorResponse
// @Router       /api/orders/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	p, err := principal(c, domain.PrincipalCustomer)
	if err != nil {
		return err
	}
	var req ports.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.CustomerID = p.ID
	req.IdempotencyKey = strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))

	result, err := h.orders.Place(c.Request().Context(), req)
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.WithLabelValues(strconv.FormatBool(result.Replayed)).Inc()

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, orderResponse{Message: "Order received successfully", Order: result.Order})
}

// Get returns one of the customer's own orders. Other customers' orders
// are reported as not found.
//
// @Summary      Get my order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/orders/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	p, err := principal(c, domain.PrincipalCustomer)
	if err != nil {
		return err
	}
	order, err := h.orders.GetForCustomer(c.Request().Context(), c.Param("id"), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// MyOrders lists the customer's orders, newest first.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  api.ErrorResponse
// @Router       /api/orders/my-orders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	p, err := principal(c, domain.PrincipalCustomer)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListForCustomer(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
