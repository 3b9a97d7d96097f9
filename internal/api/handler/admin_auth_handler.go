package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

type AdminAuthHandler struct {
	auth ports.AuthService
}

func NewAdminAuthHandler(auth ports.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

type adminRegisterResponse struct {
	Message   string        `json:"message"`
	AdminInfo *domain.Admin `json:"adminInfo"`
}

type adminLoginResponse struct {
	Message string        `json:"message"`
	Admin   *domain.Admin `json:"admin"`
	Token   string        `json:"token"`
}

// Register creates a back-office account.
//
// @Summary      Register an admin
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterAdminInput  true  "Admin details; email may be a string or a list"
// @Success      201   {object}  adminRegisterResponse
// @Failure      400   {object}  api.ErrorResponse
// @Router       /api/admin/auth/admin/register [post]
func (h *AdminAuthHandler) Register(c echo.Context) error {
	var req ports.RegisterAdminInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	admin, err := h.auth.RegisterAdmin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adminRegisterResponse{Message: "Admin registered successfully", AdminInfo: admin})
}

// Login exchanges admin credentials for a token.
//
// @Summary      Admin login
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      403   {object}  api.ErrorResponse
// @Router       /api/admin/auth/admin/login [post]
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req ports.LoginInput
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	session, err := h.auth.LoginAdmin(c.Request().Context(), req)
	metrics.AuthLoginsTotal.WithLabelValues("admin", loginResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminLoginResponse{Message: "Admin login successful", Admin: session.Admin, Token: session.Token})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
