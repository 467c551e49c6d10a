package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/northwoods-housing/compass/api/internal/errors"
	"github.com/northwoods-housing/compass/api/internal/services"
)

// respondServiceError maps a service error onto the HTTP error envelope.
// Every handler funnels service failures through here so the same error
// always produces the same status code.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, "Resource not found")
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, "Report not found")
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.AccessDenied(c, "Insufficient access tier for this action")
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidGeometry):
		apierrors.BadRequest(c, "Invalid coordinates or radius", nil)
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrUnavailable):
		apierrors.Unavailable(c, "Storage is temporarily unavailable", err)
	default:
		apierrors.InternalServerError(c, "An unexpected error occurred", err)
	}
}

// respondBindingError maps a request binding failure, preserving
// field-level detail when the validator produced it.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, "Invalid request payload", nil)
}
