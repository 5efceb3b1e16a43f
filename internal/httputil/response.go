// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/celox/clipvault/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorMapping struct {
	status  int
	message string
}

// errorMappings holds the status and client message per error code. An empty
// message means the error text itself is safe to show.
var errorMappings = map[string]errorMapping{
	apperrors.CodeNotFound:     {http.StatusNotFound, "The requested resource was not found"},
	apperrors.CodeConflict:     {http.StatusConflict, ""},
	apperrors.CodeInvalidInput: {http.StatusUnprocessableEntity, ""},
	apperrors.CodeUnauthorized: {http.StatusUnauthorized, "The password is not correct"},
	apperrors.CodeLocked: {
		http.StatusLocked,
		"Unlocking is disabled for a while after too many failed attempts",
	},
	apperrors.CodeUnavailable: {http.StatusServiceUnavailable, "Storage is not available, try again later"},
	apperrors.CodeInternal:    {http.StatusInternalServerError, "An internal error occurred"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON error response.
// Internal errors are logged in full but never described to the client.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	code := apperrors.Code(err)
	mapping := errorMappings[code]
	message := mapping.message
	if message == "" {
		message = err.Error()
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", mapping.status),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(mapping.status, ErrorResponse{Error: code, Message: message})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
