package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// CustomerHandler serves customer sign-up, login and the customer's own profile.
type CustomerHandler struct {
	auth      ports.AuthService
	customers ports.CustomerService
}

func NewCustomerHandler(auth ports.AuthService, customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{auth: auth, customers: customers}
}

// --- Request / Response types ---

type customerRegisterResponse struct {
	Message  string           `json:"message"`
	Customer *domain.Customer `json:"customer"`
}

type customerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerLoginResponse struct {
	Message  string          `json:"message"`
	Token    string          `json:"token"`
	Customer customerSummary `json:"customer"`
}

type customerUpdateResponse struct {
	Message  string           `json:"message"`
	Customer *domain.Customer `json:"customer"`
}

// Register creates a customer account.
//
// @Summary      Register a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterCustomerInput  true  "Customer details"
// @Success      201   {object}  customerRegisterResponse
// @Failure      400   {object}  api.ErrorResponse
// @Router       /api/customers/register [post]
func (h *CustomerHandler) Register(c echo.Context) error {
	var req ports.RegisterCustomerInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	customer, err := h.auth.RegisterCustomer(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customerRegisterResponse{Message: "User registered successfully", Customer: customer})
}

// Login exchanges customer credentials for a token.
//
// @Summary      Customer login
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Credentials"
// @Success      200   {object}  customerLoginResponse
// @Failure      400   {object}  api.ErrorResponse
// @Router       /api/customers/login [post]
func (h *CustomerHandler) Login(c echo.Context) error {
	var req ports.LoginInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	session, err := h.auth.LoginCustomer(c.Request().Context(), req)
	metrics.AuthLoginsTotal.WithLabelValues("customer", loginResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerLoginResponse{
		Message: "Login successful",
		Token:   session.Token,
		Customer: customerSummary{
			ID:    session.Customer.ID,
			Name:  session.Customer.Name,
			Email: session.Customer.Email,
		},
	})
}

// Me returns the authenticated customer's profile.
//
// @Summary      Current customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Customer
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/customers/me [get]
func (h *CustomerHandler) Me(c echo.Context) error {
	p, err := principal(c, domain.PrincipalCustomer)
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateMe applies a partial update to the authenticated customer.
//
// @Summary      Update current customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.UpdateCustomerInput  true  "Fields to change"
// @Success      200   {object}  customerUpdateResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Router       /api/customers/me [put]
func (h *CustomerHandler) UpdateMe(c echo.Context) error {
	p, err := principal(c, domain.PrincipalCustomer)
	if err != nil {
		return err
	}
	var req ports.UpdateCustomerInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	customer, err := h.customers.Update(c.Request().Context(), p.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerUpdateResponse{Message: "Customer updated successfully", Customer: customer})
}
