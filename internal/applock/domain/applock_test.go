package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword(""), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword("abc"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("abcd"))
	// four runes, more than four bytes
	assert.NoError(t, ValidatePassword("äöüß"))
}

func TestStatus_Locked(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	until := now.Add(time.Minute)

	assert.False(t, (&Status{}).Locked(now))
	assert.True(t, (&Status{LockedUntil: &until}).Locked(now))
	assert.False(t, (&Status{LockedUntil: &until}).Locked(until))
}
