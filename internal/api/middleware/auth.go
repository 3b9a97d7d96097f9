package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/pkg/token"
)

const (
	bearerPrefix = "Bearer "
	principalKey = "principal"

	gateCustomer = "customer"
	gateAdmin    = "admin"
)

// TokenVerifier checks a raw token for the expected kind.
type TokenVerifier interface {
	Verify(raw string, want token.Kind) (*token.Claims, error)
}

// rejection is the 401/403/500 body written by the gates.
type rejection struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

var (
	rejectMissingHeader = rejection{Message: "Authorization header missing or invalid format", Reason: "missing_header"}
	rejectMissingToken  = rejection{Message: "No token found", Reason: "missing_token"}
	rejectInvalidToken  = rejection{Message: "Invalid or expired token", Reason: "invalid_token"}
)

// CustomerGate admits requests carrying a valid customer token and attaches
// the customer principal.
func CustomerGate(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, rej := authenticate(c, tokens, token.KindCustomer)
			if rej != nil {
				return c.JSON(http.StatusUnauthorized, rej)
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// AdminGate admits requests carrying a valid admin token. Any unexpected
// failure while extracting the principal becomes a 500, distinct from the
// 401 authentication failures.
func AdminGate(tokens TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, rej, err := guardedAuthenticate(c, tokens)
			if err != nil {
				log.Error().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("admin auth middleware failed")
				return c.JSON(http.StatusInternalServerError, rejection{Message: "Server error in auth middleware"})
			}
			if rej != nil {
				return c.JSON(http.StatusUnauthorized, rej)
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

func guardedAuthenticate(c echo.Context, tokens TokenVerifier) (p *domain.Principal, rej *rejection, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	p, rej = authenticate(c, tokens, token.KindAdmin)
	return p, rej, nil
}

func authenticate(c echo.Context, tokens TokenVerifier, kind token.Kind) (*domain.Principal, *rejection) {
	gate := gateCustomer
	if kind == token.KindAdmin {
		gate = gateAdmin
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		metrics.AuthGateRejectionsTotal.WithLabelValues(gate, rejectMissingHeader.Reason).Inc()
		return nil, &rejectMissingHeader
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		metrics.AuthGateRejectionsTotal.WithLabelValues(gate, rejectMissingToken.Reason).Inc()
		return nil, &rejectMissingToken
	}

	claims, err := tokens.Verify(raw, kind)
	if err != nil {
		reason := "invalid_token"
		if errors.Is(err, token.ErrExpiredToken) {
			reason = "expired_token"
		}
		metrics.AuthGateRejectionsTotal.WithLabelValues(gate, reason).Inc()
		return nil, &rejectInvalidToken
	}

	if kind == token.KindAdmin {
		return &domain.Principal{ID: claims.AdminID, Kind: domain.PrincipalAdmin, Role: domain.Role(claims.Role)}, nil
	}
	return &domain.Principal{ID: claims.UserID, Kind: domain.PrincipalCustomer}, nil
}

// SetPrincipal attaches the authenticated principal to the request context.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached by a gate.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}
