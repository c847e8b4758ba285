package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest, "validation failed"

	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, ordering.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, account.ErrUserNotFound):
		return http.StatusNotFound, "user not found"

	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, account.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, account.ErrForbidden):
		return http.StatusForbidden, "admin role required"

	case errors.Is(err, ordering.ErrInvalidTransition),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, account.ErrCannotDeleteSelf):
		return http.StatusConflict, err.Error()

	case errors.Is(err, catalog.ErrProductNotActive):
		return http.StatusUnprocessableEntity, err.Error()

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes the mapped status. Unexpected errors are logged with their details
// and reported to the client generically.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Fields: validation.FieldsOf(err)})
}

// respondBadRequest reports a body or parameter that could not be decoded.
func respondBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
