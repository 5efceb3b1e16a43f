// Package http provides HTTP handlers for encrypted backup export and import.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	"github.com/celox/clipvault/internal/backup/http/dto"
	backupUseCase "github.com/celox/clipvault/internal/backup/usecase"
	apperrors "github.com/celox/clipvault/internal/errors"
	"github.com/celox/clipvault/internal/httputil"
	customValidation "github.com/celox/clipvault/internal/validation"
)

// EntryCountHeader carries the number of entries in an exported container.
const EntryCountHeader = "X-Entry-Count"

// BackupHandler handles HTTP requests for backups.
type BackupHandler struct {
	backupUseCase backupUseCase.BackupUseCase
	now           func() time.Time
	logger        *slog.Logger
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(useCase backupUseCase.BackupUseCase, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		backupUseCase: useCase,
		now:           time.Now,
		logger:        logger,
	}
}

// ExportHandler returns the sealed history as a file download.
// POST /v1/backup/export
func (h *BackupHandler) ExportHandler(c *gin.Context) {
	var req dto.ExportBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, count, err := h.backupUseCase.Export(c.Request.Context(), req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("clipvault-%s%s", h.now().UTC().Format("20060102-150405"), backupDomain.FileExtension)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header(EntryCountHeader, strconv.Itoa(count))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// ImportHandler adds the entries of a container to the history.
// POST /v1/backup/import
func (h *BackupHandler) ImportHandler(c *gin.Context) {
	var req dto.ImportBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := req.Container()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	imported, err := h.backupUseCase.Import(c.Request.Context(), data, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImportBackupResponse{Imported: imported})
}

// handleError shows rejected containers with their user message; everything else
// goes through the shared mapping.
func (h *BackupHandler) handleError(c *gin.Context, err error) {
	if !apperrors.Is(err, apperrors.ErrInvalidInput) {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Warn("backup rejected", slog.Any("error", err))
	c.JSON(http.StatusUnprocessableEntity, httputil.ErrorResponse{
		Error:   "invalid_backup",
		Message: backupDomain.UserMessage(err),
	})
}
