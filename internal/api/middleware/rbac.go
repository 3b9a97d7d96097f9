package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// RequireRole enforces role-based access control on admin principals.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if ok && p.Kind == domain.PrincipalAdmin {
				if _, ok := allowed[p.Role]; ok {
					return next(c)
				}
			}
			metrics.AuthGateRejectionsTotal.WithLabelValues(gateAdmin, "forbidden_role").Inc()
			return c.JSON(http.StatusForbidden, rejection{Message: "Access denied. Admin privileges required."})
		}
	}
}
