// Package http provides HTTP handlers for the app lock.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/celox/clipvault/internal/applock/http/dto"
	applockUseCase "github.com/celox/clipvault/internal/applock/usecase"
	"github.com/celox/clipvault/internal/httputil"
	customValidation "github.com/celox/clipvault/internal/validation"
)

// AppLockHandler handles HTTP requests for the app lock.
type AppLockHandler struct {
	appLockUseCase applockUseCase.AppLockUseCase
	logger         *slog.Logger
}

// NewAppLockHandler creates a new app lock handler.
func NewAppLockHandler(useCase applockUseCase.AppLockUseCase, logger *slog.Logger) *AppLockHandler {
	return &AppLockHandler{
		appLockUseCase: useCase,
		logger:         logger,
	}
}

// StatusHandler returns the lock state.
// GET /v1/lock
func (h *AppLockHandler) StatusHandler(c *gin.Context) {
	status, err := h.appLockUseCase.Status(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapStatusToResponse(status))
}

// EnableHandler turns the lock on.
// POST /v1/lock/enable - Returns 201 with the password when it was generated, 204 otherwise.
func (h *AppLockHandler) EnableHandler(c *gin.Context) {
	var req dto.EnableRequest
	if !h.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if req.Generate {
		password, err := h.appLockUseCase.EnableGenerated(ctx, req.Biometric)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusCreated, dto.GeneratedPasswordResponse{Password: password})
		return
	}

	if err := h.appLockUseCase.Enable(ctx, req.Password, req.Biometric); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

// DisableHandler turns the lock off.
// POST /v1/lock/disable
func (h *AppLockHandler) DisableHandler(c *gin.Context) {
	var req dto.PasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.appLockUseCase.Disable(c.Request.Context(), req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

// UnlockHandler verifies the password.
// POST /v1/lock/unlock - Returns 401 for a wrong password and 423 during a lockout.
func (h *AppLockHandler) UnlockHandler(c *gin.Context) {
	var req dto.PasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.appLockUseCase.Unlock(c.Request.Context(), req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

// ChangePasswordHandler replaces the password.
// PUT /v1/lock/password
func (h *AppLockHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.appLockUseCase.ChangePassword(c.Request.Context(), req.OldPassword, req.NewPassword); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

// BiometricHandler stores the biometric preference.
// PUT /v1/lock/biometric
func (h *AppLockHandler) BiometricHandler(c *gin.Context) {
	var req dto.BiometricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.appLockUseCase.SetBiometric(c.Request.Context(), req.Enabled); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

type validatable interface {
	Validate() error
}

// bind decodes and validates the body, writing the error response when it fails.
func (h *AppLockHandler) bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}
