package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/core/ports"
)

type AdminCustomerHandler struct {
	customers ports.CustomerService
}

func NewAdminCustomerHandler(customers ports.CustomerService) *AdminCustomerHandler {
	return &AdminCustomerHandler{customers: customers}
}

// List returns every customer account without password hashes.
//
// @Summary      List customers
// @Tags         admin-customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Customer
// @Router       /api/admin/customers/admin/customers [get]
func (h *AdminCustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Update changes a customer's profile. A non-empty password is re-hashed.
//
// @Summary      Update a customer
// @Tags         admin-customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Customer id"
// @Param        body  body      ports.UpdateCustomerInput  true  "Fields to change"
// @Success      200   {object}  customerUpdateResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /api/admin/customers/admin/update-customer/{id} [put]
func (h *AdminCustomerHandler) Update(c echo.Context) error {
	var req ports.UpdateCustomerInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	customer, err := h.customers.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerUpdateResponse{Message: "Customer updated successfully", Customer: customer})
}

// Delete removes a customer account.
//
// @Summary      Delete a customer
// @Tags         admin-customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/customers/admin/delete-customer/{id} [delete]
func (h *AdminCustomerHandler) Delete(c echo.Context) error {
	if err := h.customers.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}
