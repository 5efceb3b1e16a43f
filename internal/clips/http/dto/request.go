// Package dto provides data transfer objects for the clip history API.
package dto

import (
	validation "github.com/jellydator/validation"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	customValidation "github.com/celox/clipvault/internal/validation"
)

// InsertClipRequest adds clipboard text to the history.
type InsertClipRequest struct {
	Content string `json:"content"`
}

// Validate checks if the insert request is valid.
func (r *InsertClipRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required, customValidation.NotBlank),
	)
}

// RestoreClipRequest writes a deleted entry back. It carries the entry returned by the delete call.
type RestoreClipRequest struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Pinned    bool   `json:"pinned"`
}

// Validate checks if the restore request is valid. A zero id restores under a new id.
func (r *RestoreClipRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Min(int64(0))),
		validation.Field(&r.Content, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Timestamp, validation.Required, validation.Min(int64(1))),
	)
}

// ToEntry converts the request to a domain entry.
func (r *RestoreClipRequest) ToEntry() *clipsDomain.ClipEntry {
	return &clipsDomain.ClipEntry{
		ID:        r.ID,
		Content:   r.Content,
		Timestamp: r.Timestamp,
		Pinned:    r.Pinned,
	}
}

// BatchPinRequest pins or unpins a selection.
type BatchPinRequest struct {
	IDs    []int64 `json:"ids"`
	Pinned bool    `json:"pinned"`
}

// Validate checks if the batch pin request is valid.
func (r *BatchPinRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDs, validation.Required, customValidation.PositiveIDs),
	)
}

// BatchDeleteRequest deletes a selection.
type BatchDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// Validate checks if the batch delete request is valid.
func (r *BatchDeleteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDs, validation.Required, customValidation.PositiveIDs),
	)
}
