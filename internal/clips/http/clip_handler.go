// Package http provides HTTP handlers for the clip history.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
	"github.com/celox/clipvault/internal/httputil"
	customValidation "github.com/celox/clipvault/internal/validation"
)

// ClipHandler handles HTTP requests for the clip history.
type ClipHandler struct {
	clipUseCase clipsUseCase.ClipUseCase
	logger      *slog.Logger
}

// NewClipHandler creates a new clip handler.
func NewClipHandler(clipUseCase clipsUseCase.ClipUseCase, logger *slog.Logger) *ClipHandler {
	return &ClipHandler{
		clipUseCase: clipUseCase,
		logger:      logger,
	}
}

// ListHandler lists the history, pinned entries first.
// GET /v1/clips?query=&offset=&limit=
func (h *ClipHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.clipUseCase.List(ctx, clipsDomain.ListOptions{
		Query:  strings.TrimSpace(c.Query("query")),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	total, err := h.clipUseCase.Count(ctx)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClipsToListResponse(entries, total))
}

// InsertHandler adds text to the history.
// POST /v1/clips - Returns 201 when a row was written, 200 when the text was deduped or suppressed.
func (h *ClipHandler) InsertHandler(c *gin.Context) {
	var req dto.InsertClipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.clipUseCase.Insert(c.Request.Context(), req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusOK
	if result.Outcome == clipsDomain.Inserted {
		status = http.StatusCreated
	}
	c.JSON(status, dto.MapInsertResultToResponse(result))
}

// LatestHandler returns the newest entry.
// GET /v1/clips/latest
func (h *ClipHandler) LatestHandler(c *gin.Context) {
	entry, err := h.clipUseCase.Latest(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapClipToResponse(entry))
}

// GetHandler returns one entry.
// GET /v1/clips/:id
func (h *ClipHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entry, err := h.clipUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapClipToResponse(entry))
}

// DeleteHandler deletes one entry and returns it so the caller can offer undo.
// DELETE /v1/clips/:id
func (h *ClipHandler) DeleteHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	entry, err := h.clipUseCase.Get(ctx, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if err := h.clipUseCase.Delete(ctx, entry); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapClipToResponse(entry))
}

// RestoreHandler writes a deleted entry back (undo).
// POST /v1/clips/restore
func (h *ClipHandler) RestoreHandler(c *gin.Context) {
	var req dto.RestoreClipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	entry := req.ToEntry()
	if err := h.clipUseCase.ReInsert(c.Request.Context(), entry); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, dto.MapClipToResponse(entry))
}

// TogglePinHandler flips the pinned flag of one entry.
// POST /v1/clips/:id/toggle-pin
func (h *ClipHandler) TogglePinHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	updated, err := h.clipUseCase.TogglePin(c.Request.Context(), &clipsDomain.ClipEntry{ID: id})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapClipToResponse(updated))
}

// BatchPinHandler pins or unpins a selection.
// POST /v1/clips/batch/pin
func (h *ClipHandler) BatchPinHandler(c *gin.Context) {
	var req dto.BatchPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	n, err := h.clipUseCase.SetPinned(c.Request.Context(), req.IDs, req.Pinned)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.AffectedResponse{Affected: n})
}

// BatchDeleteHandler deletes a selection.
// POST /v1/clips/batch/delete
func (h *ClipHandler) BatchDeleteHandler(c *gin.Context) {
	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	n, err := h.clipUseCase.DeleteBatch(c.Request.Context(), req.IDs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.AffectedResponse{Affected: n})
}

// ClearHandler deletes every unpinned entry.
// DELETE /v1/clips
func (h *ClipHandler) ClearHandler(c *gin.Context) {
	n, err := h.clipUseCase.DeleteAllUnpinned(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.AffectedResponse{Affected: n})
}
