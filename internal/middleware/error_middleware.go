package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lpavone/examtrack/internal/app/models/dto"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Every failure path
// produces a response; nothing is swallowed.
//
// Status conventions: validation 422, missing resources 404, authentication
// failures 401, storage failures on mutating operations 503, anything else
// 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: err.Error()})

	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))

	case errors.Is(err, apperrors.ErrStorageFailure):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error"))
	}
}
