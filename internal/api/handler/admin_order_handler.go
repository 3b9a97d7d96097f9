package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// AdminOrderHandler is the back-office view of all orders.
type AdminOrderHandler struct {
	orders ports.OrderService
}

func NewAdminOrderHandler(orders ports.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// List returns every order with its customer.
//
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Router       /api/admin/orders/admin/orders [get]
func (h *AdminOrderHandler) List(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Detail returns an order with its customer, products and change history.
//
// @Summary      Order detail
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/orders/admin/order/{id} [get]
func (h *AdminOrderHandler) Detail(c echo.Context) error {
	order, err := h.orders.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order to a new fulfilment status.
//
// @Summary      Update order status
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "pending, processing, completed or cancelled"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /api/admin/orders/admin/update-order-status/{id} [put]
func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	p, err := principal(c, domain.PrincipalAdmin)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Message: "Order status updated successfully", Order: order})
}

// UpdatePaymentStatus records a payment outcome on an order.
//
// @Summary      Update payment status
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Order id"
// @Param        body  body      updatePaymentStatusRequest  true  "pending, completed or failed"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /api/admin/orders/admin/update-payment-status/{id} [put]
func (h *AdminOrderHandler) UpdatePaymentStatus(c echo.Context) error {
	p, err := principal(c, domain.PrincipalAdmin)
	if err != nil {
		return err
	}
	var req updatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	order, err := h.orders.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), req.PaymentStatus, p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Message: "Payment status updated successfully", Order: order})
}

// Delete removes an order.
//
// @Summary      Delete an order
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/orders/admin/delete-order/{id} [delete]
func (h *AdminOrderHandler) Delete(c echo.Context) error {
	if err := h.orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}

// SalesData returns this year's sales per month, cancelled orders excluded.
//
// @Summary      Monthly sales
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MonthlySales
// @Router       /api/admin/orders/admin/sales-data [get]
func (h *AdminOrderHandler) SalesData(c echo.Context) error {
	sales, err := h.orders.MonthlySales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// StatusData returns how many orders sit in each status.
//
// @Summary      Order status distribution
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.StatusCount
// @Router       /api/admin/orders/admin/order-status-data [get]
func (h *AdminOrderHandler) StatusData(c echo.Context) error {
	counts, err := h.orders.StatusDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}
