// Package dto provides data transfer objects for the backup API.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	customValidation "github.com/celox/clipvault/internal/validation"
)

// ExportBackupRequest asks for a sealed export of the whole history.
type ExportBackupRequest struct {
	Password string `json:"password"`
}

// Validate checks if the export request is valid.
func (r *ExportBackupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ImportBackupRequest carries a base64 encoded container and its password.
type ImportBackupRequest struct {
	Password string `json:"password"`
	Data     string `json:"data"`
}

// Validate checks if the import request is valid.
func (r *ImportBackupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Data, validation.Required, customValidation.Base64),
	)
}

// Container decodes Data. Call it after Validate.
func (r *ImportBackupRequest) Container() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Data)
}

// ImportBackupResponse reports how many entries were added.
type ImportBackupResponse struct {
	Imported int `json:"imported"`
}
