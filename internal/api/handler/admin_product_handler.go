package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// AdminProductHandler manages the catalog from the back-office. Add and
// Update accept multipart forms with an optional "image" file.
type AdminProductHandler struct {
	products ports.ProductService
}

func NewAdminProductHandler(products ports.ProductService) *AdminProductHandler {
	return &AdminProductHandler{products: products}
}

type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

// List returns every product.
//
// @Summary      List products (admin)
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/admin/products/admin/products [get]
func (h *AdminProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), ports.ProductFilter{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Add creates a product from a multipart form.
//
// @Summary      Add a product
// @Tags         admin-products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Name"
// @Param        price        formData  number  true   "Price"
// @Param        description  formData  string  true   "Description"
// @Param        stock        formData  integer true   "Stock"
// @Param        category     formData  string  true   "Category"
// @Param        image        formData  file    false  "jpg, jpeg, png or gif"
// @Success      201  {object}  productResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /api/admin/products/admin/add-product [post]
func (h *AdminProductHandler) Add(c echo.Context) error {
	name := c.FormValue("name")
	rawPrice := c.FormValue("price")
	description := c.FormValue("description")
	rawStock := c.FormValue("stock")
	category := c.FormValue("category")
	if name == "" || rawPrice == "" || description == "" || rawStock == "" || category == "" {
		return domain.NewValidationError("body", "All fields are required")
	}

	price, perr := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	stock, serr := strconv.Atoi(strings.TrimSpace(rawStock))
	if perr != nil || serr != nil || price <= 0 || stock < 0 {
		return domain.NewValidationError("price", "Invalid price or stock value")
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()

	product, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        name,
		Price:       price,
		Description: description,
		Stock:       stock,
		Category:    category,
		Image:       image,
	})
	if err != nil {
		return err
	}
	metrics.ProductsCreatedTotal.WithLabelValues(string(product.Category)).Inc()
	return c.JSON(http.StatusCreated, productResponse{Message: "Product added successfully", Product: product})
}

// Update merges the supplied fields into a product. Blank fields keep their
// stored value; a new image replaces the image list.
//
// @Summary      Update a product
// @Tags         admin-products
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/products/admin/update-product/{id} [put]
func (h *AdminProductHandler) Update(c echo.Context) error {
	var (
		in  ports.UpdateProductInput
		err error
	)
	if isForm(c) {
		in, err = updateFromForm(c)
	} else {
		err = c.Bind(&in)
		if err != nil {
			err = bindError(err)
		}
	}
	if err != nil {
		return err
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()
	in.Image = image

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Message: "Product updated successfully", Product: product})
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/products/admin/delete-product/{id} [delete]
func (h *AdminProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEMultipartForm) || strings.HasPrefix(ct, echo.MIMEApplicationForm)
}

func updateFromForm(c echo.Context) (ports.UpdateProductInput, error) {
	in := ports.UpdateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, domain.NewValidationError("price", "Invalid price or stock value")
		}
		in.Price = &price
	}
	if raw := strings.TrimSpace(c.FormValue("stock")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return in, domain.NewValidationError("stock", "Invalid price or stock value")
		}
		in.Stock = &stock
	}
	return in, nil
}

// formImage opens the optional "image" part. The returned func closes it.
func formImage(c echo.Context) (*ports.ImageUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, noop, nil
	}
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload").SetInternal(err)
	}
	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}
	return &ports.ImageUpload{Filename: header.Filename, Content: file}, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
