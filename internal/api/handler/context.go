package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/middleware"
	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// principal returns the identity attached by the gate in front of the route.
// Reaching a protected handler without one means the route was wired without
// its gate, so the request is refused rather than served anonymously.
func principal(c echo.Context, kind domain.PrincipalKind) (*domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.Kind != kind || p.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// messageResponse is the body of plain acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

func bindError(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
}
