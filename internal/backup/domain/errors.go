package domain

import (
	"fmt"

	"github.com/celox/clipvault/internal/errors"
)

// Backup error definitions.
//
// All three container errors are user visible; use UserMessage to render them.
var (
	// ErrInvalidContainer indicates the data is not a backup container, or its
	// authenticated payload is not a backup document.
	ErrInvalidContainer = errors.Wrap(errors.ErrInvalidInput, "invalid backup container")

	// ErrUnsupportedVersion indicates a container version this build cannot read.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported backup version")

	// ErrAuthenticationFailed indicates the tag did not verify: wrong password or corrupted file.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "backup authentication failed")

	// ErrEmptyPassword indicates an export or import without a password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "backup password is required")
)

// UnsupportedVersionError carries the version found in a rejected container.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported backup version %d", e.Version)
}

// Unwrap makes errors.Is(err, ErrUnsupportedVersion) hold.
func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// UserMessage renders a backup error for display. Other errors yield their own text.
func UserMessage(err error) string {
	var versionErr *UnsupportedVersionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &versionErr):
		return versionErr.Error()
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported backup version"
	case errors.Is(err, ErrAuthenticationFailed):
		return "wrong password or corrupted file"
	case errors.Is(err, ErrInvalidContainer):
		return "not a ClipVault backup file"
	case errors.Is(err, ErrEmptyPassword):
		return "a backup password is required"
	default:
		return err.Error()
	}
}
