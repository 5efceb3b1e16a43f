package domain

import (
	"github.com/celox/clipvault/internal/errors"
)

// Clip error definitions.
var (
	// ErrEmptyContent indicates an insert of empty or whitespace-only content.
	ErrEmptyContent = errors.Wrap(errors.ErrInvalidInput, "clip content is empty")

	// ErrClipNotFound indicates no clip has the requested id.
	ErrClipNotFound = errors.Wrap(errors.ErrNotFound, "clip not found")

	// ErrInvalidClipID indicates a non-positive clip id.
	ErrInvalidClipID = errors.Wrap(errors.ErrInvalidInput, "clip id must be positive")
)
