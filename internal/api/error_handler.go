package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Message string              `json:"message"`
	Reason  string              `json:"reason,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and logs anything unexpected without leaking it.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, ErrorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Message: verr.Error(), Errors: verr.Fields}
	}

	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrorResponse{Message: notFound.Message}
	case errors.As(err, &conflict):
		return http.StatusBadRequest, ErrorResponse{Message: conflict.Message}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, ErrorResponse{Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Message: "Access denied. Admin privileges required."}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusBadRequest, ErrorResponse{Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, ErrorResponse{Message: "internal server error"}
}
