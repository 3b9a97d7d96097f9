package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

func runRequireRole(t *testing.T, p *domain.Principal) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		SetPrincipal(c, p)
	}

	called := false
	handler := RequireRole(domain.AdminRoles...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRequireRole_Allows(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin} {
		rec, called := runRequireRole(t, &domain.Principal{ID: "a1", Kind: domain.PrincipalAdmin, Role: role})
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected pass-through, got %d", role, rec.Code)
		}
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	cases := map[string]*domain.Principal{
		"unknown role": {ID: "a1", Kind: domain.PrincipalAdmin, Role: "viewer"},
		"empty role":   {ID: "a1", Kind: domain.PrincipalAdmin},
		"customer":     {ID: "c1", Kind: domain.PrincipalCustomer, Role: domain.RoleAdmin},
		"no principal": nil,
	}
	for name, p := range cases {
		rec, called := runRequireRole(t, p)
		if called {
			t.Fatalf("%s: should not reach next handler", name)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", name, rec.Code)
		}
	}
}
