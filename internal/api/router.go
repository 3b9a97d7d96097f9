package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/beautyshop/storefront-api/internal/api/handler"
	"github.com/beautyshop/storefront-api/internal/api/middleware"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Log    zerolog.Logger
	Tokens middleware.TokenVerifier

	Auth      ports.AuthService
	Customers ports.CustomerService
	Products  ports.ProductService
	Orders    ports.OrderService
	Health    *handler.HealthHandler

	// UploadsDir is served at /uploads when non-empty.
	UploadsDir string
	// AllowedOrigins restricts CORS. Empty allows any origin.
	AllowedOrigins []string

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.AllowedOrigins)))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	customers := handler.NewCustomerHandler(deps.Auth, deps.Customers)
	adminAuth := handler.NewAdminAuthHandler(deps.Auth)
	products := handler.NewProductHandler(deps.Products)
	orders := handler.NewOrderHandler(deps.Orders)
	adminCustomers := handler.NewAdminCustomerHandler(deps.Customers)
	adminProducts := handler.NewAdminProductHandler(deps.Products)
	adminOrders := handler.NewAdminOrderHandler(deps.Orders)

	customerGate := middleware.CustomerGate(deps.Tokens)
	adminGate := middleware.AdminGate(deps.Tokens, deps.Log)
	adminRole := middleware.RequireRole(domain.AdminRoles...)

	// --- Customers ---
	cg := e.Group("/api/customers")
	cg.POST("/register", customers.Register)
	cg.POST("/login", customers.Login)
	cg.GET("/me", customers.Me, customerGate)
	cg.PUT("/me", customers.UpdateMe, customerGate)

	// --- Admin auth ---
	ag := e.Group("/api/admin/auth")
	ag.POST("/admin/register", adminAuth.Register)
	ag.POST("/admin/login", adminAuth.Login)

	// --- Orders (customer gate) ---
	og := e.Group("/api/orders", customerGate)
	og.POST("", orders.Place)
	og.POST("/orders", orders.Place)
	og.GET("/orders/:id", orders.Get)
	og.GET("/my-orders", orders.MyOrders)

	// --- Public catalog ---
	pg := e.Group("/api/products")
	pg.GET("", products.List)
	pg.GET("/products", products.List)
	pg.GET("/products/:id", products.Get)
	pg.GET("/shop/products", products.Shop)
	pg.GET("/featured-products", products.Featured)
	pg.GET("/shop/products/:category", products.ShopByCategory)

	// --- Back-office (admin gate + role) ---
	acg := e.Group("/api/admin/customers", adminGate, adminRole)
	acg.GET("", adminCustomers.List)
	acg.GET("/admin/customers", adminCustomers.List)
	acg.PUT("/admin/update-customer/:id", adminCustomers.Update)
	acg.DELETE("/admin/delete-customer/:id", adminCustomers.Delete)

	apg := e.Group("/api/admin/products", adminGate, adminRole)
	apg.GET("", adminProducts.List)
	apg.GET("/admin/products", adminProducts.List)
	apg.POST("/admin/add-product", adminProducts.Add)
	apg.PUT("/admin/update-product/:id", adminProducts.Update)
	apg.DELETE("/admin/delete-product/:id", adminProducts.Delete)

	aog := e.Group("/api/admin/orders", adminGate, adminRole)
	aog.GET("", adminOrders.List)
	aog.GET("/admin/orders", adminOrders.List)
	aog.GET("/admin/order/:id", adminOrders.Detail)
	aog.PUT("/admin/update-order-status/:id", adminOrders.UpdateStatus)
	aog.PUT("/admin/update-payment-status/:id", adminOrders.UpdatePaymentStatus)
	aog.DELETE("/admin/delete-order/:id", adminOrders.Delete)
	aog.GET("/admin/sales-data", adminOrders.SalesData)
	aog.GET("/admin/order-status-data", adminOrders.StatusData)

	// --- Static, health, metrics, docs (no auth required) ---
	if deps.UploadsDir != "" {
		e.Static("/uploads", deps.UploadsDir)
	}
	if deps.Health != nil {
		e.GET("/health", deps.Health.Liveness)
		e.GET("/health/ready", deps.Health.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			echo.HeaderAccept,
			"Cache-Control",
			echo.HeaderXRequestedWith,
			handler.HeaderIdempotencyKey,
		},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = []string{"*"}
		cfg.UnsafeWildcardOriginWithAllowCredentials = true
	}
	return cfg
}
