package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/middleware"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	registerCustomerFn func(ctx context.Context, in ports.RegisterCustomerInput) (*domain.Customer, error)
	loginCustomerFn    func(ctx context.Context, in ports.LoginInput) (*ports.CustomerSession, error)
	registerAdminFn    func(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error)
	loginAdminFn       func(ctx context.Context, in ports.LoginInput) (*ports.AdminSession, error)
}

func (s *stubAuthService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*domain.Customer, error) {
	return s.registerCustomerFn(ctx, in)
}

func (s *stubAuthService) LoginCustomer(ctx context.Context, in ports.LoginInput) (*ports.CustomerSession, error) {
	return s.loginCustomerFn(ctx, in)
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error) {
	return s.registerAdminFn(ctx, in)
}

func (s *stubAuthService) LoginAdmin(ctx context.Context, in ports.LoginInput) (*ports.AdminSession, error) {
	return s.loginAdminFn(ctx, in)
}

type stubCustomerService struct {
	getFn    func(ctx context.Context, id string) (*domain.Customer, error)
	listFn   func(ctx context.Context) ([]*domain.Customer, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.Customer, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.getFn(ctx, id)
}

func (s *stubCustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.listFn(ctx)
}

func (s *stubCustomerService) Update(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.Customer, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubCustomerService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubProductService struct {
	createFn   func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	getFn      func(ctx context.Context, id string) (*domain.Product, error)
	listFn     func(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error)
	featuredFn func(ctx context.Context) ([]*domain.Product, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	return s.listFn(ctx, filter)
}

func (s *stubProductService) Featured(ctx context.Context) ([]*domain.Product, error) {
	return s.featuredFn(ctx)
}

func (s *stubProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// stubOrderService embeds the interface so tests only implement what they call.
type stubOrderService struct {
	ports.OrderService
	placeFn        func(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error)
	getFn          func(ctx context.Context, id, customerID string) (*domain.Order, error)
	listMineFn     func(ctx context.Context, customerID string) ([]*domain.Order, error)
	updateStatusFn func(ctx context.Context, id, status, actor string) (*domain.Order, error)
	updatePayFn    func(ctx context.Context, id, status, actor string) (*domain.Order, error)
	salesFn        func(ctx context.Context) ([]domain.MonthlySales, error)
}

func (s *stubOrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	return s.placeFn(ctx, in)
}

func (s *stubOrderService) GetForCustomer(ctx context.Context, id, customerID string) (*domain.Order, error) {
	return s.getFn(ctx, id, customerID)
}

func (s *stubOrderService) ListForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.listMineFn(ctx, customerID)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id, status, actor string) (*domain.Order, error) {
	return s.updateStatusFn(ctx, id, status, actor)
}

func (s *stubOrderService) UpdatePaymentStatus(ctx context.Context, id, status, actor string) (*domain.Order, error) {
	return s.updatePayFn(ctx, id, status, actor)
}

func (s *stubOrderService) MonthlySales(ctx context.Context) ([]domain.MonthlySales, error) {
	return s.salesFn(ctx)
}

func newContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, strings.NewReader(body), echo.MIMEApplicationJSON)
}

func asCustomer(c echo.Context, id string) echo.Context {
	middleware.SetPrincipal(c, &domain.Principal{ID: id, Kind: domain.PrincipalCustomer})
	return c
}

func asAdmin(c echo.Context, id string) echo.Context {
	middleware.SetPrincipal(c, &domain.Principal{ID: id, Kind: domain.PrincipalAdmin, Role: domain.RoleAdmin})
	return c
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
