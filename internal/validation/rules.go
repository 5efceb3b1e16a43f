// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/celox/clipvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// MinRunes validates that a string holds at least n characters. Empty strings pass so
// Required can report them.
func MinRunes(n int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_min_runes_type", "must be a string")
		}
		if s == "" || utf8.RuneCountInString(s) >= n {
			return nil
		}
		return validation.NewError("validation_min_runes", fmt.Sprintf("must be at least %d characters", n))
	})
}

// PositiveIDs validates that every element of an []int64 is greater than zero.
var PositiveIDs = validation.By(func(value interface{}) error {
	ids, ok := value.([]int64)
	if !ok {
		return validation.NewError("validation_ids_type", "must be a list of ids")
	}
	for _, id := range ids {
		if id <= 0 {
			return validation.NewError("validation_ids_positive", "ids must be positive")
		}
	}
	return nil
})

// Base64 accepts standard base64, the form backup containers take on the local API.
// Empty strings pass so Required decides about them.
var Base64 = validation.By(func(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})
