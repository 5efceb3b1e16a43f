// Package dto provides data transfer objects for the app lock API.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	applockDomain "github.com/celox/clipvault/internal/applock/domain"
	customValidation "github.com/celox/clipvault/internal/validation"
)

// EnableRequest turns the lock on. With Generate set the password is generated and Password must be empty.
type EnableRequest struct {
	Password  string `json:"password"`
	Generate  bool   `json:"generate"`
	Biometric bool   `json:"biometric"`
}

// Validate checks if the enable request is valid.
func (r *EnableRequest) Validate() error {
	if r.Generate {
		return validation.ValidateStruct(r,
			validation.Field(&r.Password, validation.Empty),
		)
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.MinRunes(applockDomain.MinPasswordLength),
		),
	)
}

// PasswordRequest carries the current password for unlock and disable.
type PasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the password request is valid.
func (r *PasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordRequest replaces the password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			customValidation.MinRunes(applockDomain.MinPasswordLength),
		),
	)
}

// BiometricRequest stores the biometric preference.
type BiometricRequest struct {
	Enabled bool `json:"enabled"`
}

// StatusResponse represents the lock state.
type StatusResponse struct {
	Enabled           bool       `json:"enabled"`
	Biometric         bool       `json:"biometric"`
	PasswordGenerated bool       `json:"password_generated"`
	FailedAttempts    int        `json:"failed_attempts"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
}

// MapStatusToResponse converts the domain status to an API response.
func MapStatusToResponse(status *applockDomain.Status) StatusResponse {
	return StatusResponse{
		Enabled:           status.Enabled,
		Biometric:         status.Biometric,
		PasswordGenerated: status.PasswordGenerated,
		FailedAttempts:    status.FailedAttempts,
		LockedUntil:       status.LockedUntil,
	}
}

// GeneratedPasswordResponse returns a generated password once.
type GeneratedPasswordResponse struct {
	Password string `json:"password"`
}
