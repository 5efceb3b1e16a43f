package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/celox/clipvault/internal/errors"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "copied text",
			shouldErr: false,
		},
		{
			name:      "surrounding whitespace is kept",
			input:     "  text  ",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMinRunes(t *testing.T) {
	rule := MinRunes(4)

	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{name: "long enough", input: "abcd", shouldErr: false},
		{name: "multibyte characters count once", input: "äöüß", shouldErr: false},
		{name: "too short", input: "abc", shouldErr: true},
		{name: "empty left to Required", input: "", shouldErr: false},
		{name: "not a string", input: 1234, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.input, rule)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	err := validation.Validate("ab", rule)
	assert.EqualError(t, err, "must be at least 4 characters")
}

func TestPositiveIDs(t *testing.T) {
	assert.NoError(t, validation.Validate([]int64{1, 2, 3}, PositiveIDs))
	assert.Error(t, validation.Validate([]int64{1, 0}, PositiveIDs))
	assert.Error(t, validation.Validate([]int64{-5}, PositiveIDs))
	assert.Error(t, validation.Validate([]string{"1"}, PositiveIDs))
}

func TestBase64(t *testing.T) {
	assert.NoError(t, validation.Validate("Q1ZCSw==", Base64))
	assert.NoError(t, validation.Validate("", Base64))
	assert.Error(t, validation.Validate("not base64!", Base64))
	assert.Error(t, validation.Validate(42, Base64))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid input")
}
