package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/domain"
	"blackpiston/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, err error) {
	if code == "" {
		code = http.StatusText(status)
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), err)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), err)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), err)
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, "cancelled", "request cancelled", err)
	case domain.IsInternal(err):
		// the message is ours; the wrapped cause stays in the gin error log
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), err)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
}
