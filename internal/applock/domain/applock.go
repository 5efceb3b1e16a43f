// Package domain defines the app lock: a UI-level password gate in front of
// the clip history, independent of the database passphrase.
package domain

import (
	"time"
	"unicode/utf8"
)

const (
	// MinPasswordLength is the minimum number of characters of a user-chosen password.
	MinPasswordLength = 4

	// GeneratedPasswordLength is the length of a generated app lock password.
	GeneratedPasswordLength = 32

	// GeneratedPasswordAlphabet is the alphabet generated app lock passwords are drawn from.
	GeneratedPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%&*"
)

// Status is the observable app lock state.
type Status struct {
	Enabled           bool
	Biometric         bool
	PasswordGenerated bool
	FailedAttempts    int
	// LockedUntil is set while unlocking is refused.
	LockedUntil *time.Time
}

// Locked reports whether unlocking is refused at now.
func (s *Status) Locked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// ValidatePassword checks a user-chosen password.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
