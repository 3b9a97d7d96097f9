package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns every product, in stock or not.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Router       /api/products/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	return h.list(c, ports.ProductFilter{})
}

// Get returns one product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/products/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Shop returns the products currently in stock.
//
// @Summary      Shop products
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Router       /api/products/shop/products [get]
func (h *ProductHandler) Shop(c echo.Context) error {
	return h.list(c, ports.ProductFilter{InStockOnly: true})
}

// ShopByCategory returns the in-stock products of one category. An unknown
// category simply matches nothing.
//
// @Summary      Shop products by category
// @Tags         products
// @Produce      json
// @Param        category  path   string  true  "skincare, makeup, haircare or fragrance"
// @Success      200       {array}  domain.Product
// @Router       /api/products/shop/products/{category} [get]
func (h *ProductHandler) ShopByCategory(c echo.Context) error {
	return h.list(c, ports.ProductFilter{InStockOnly: true, Category: domain.Category(c.Param("category"))})
}

// Featured returns the newest in-stock product of each category.
//
// @Summary      Featured products
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Router       /api/products/featured-products [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.products.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) list(c echo.Context, filter ports.ProductFilter) error {
	products, err := h.products.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
