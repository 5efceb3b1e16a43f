package domain

// PrefsBucket is the bbolt bucket holding every preference and secret record.
const PrefsBucket = "clipvault_secure_prefs"

// Preference keys of the current scheme.
const (
	// KeyDBPassphrase holds the SecretRecord of the auto-managed database passphrase.
	KeyDBPassphrase = "db_passphrase"
	// KeyMigrated is the monotonic migration flag.
	KeyMigrated = "v3_migrated"
	// KeyMasterKey holds the keeper-wrapped master key.
	KeyMasterKey = "master_key"
	// KeyAutoCleanupDays holds the auto-cleanup retention in days (0 disables it).
	KeyAutoCleanupDays = "auto_cleanup_days"
	// KeyLastDeleted holds the SecretRecord of the most recently deleted clip, for undo.
	KeyLastDeleted = "last_deleted_clip"

	KeyAppLockEnabled     = "app_lock_enabled"
	KeyAppLockPassword    = "app_lock_password"
	KeyAppLockBiometric   = "app_lock_biometric"
	KeyAppLockPWGenerated = "app_lock_pw_generated"

	// KeyAppLockFailedAttempts counts consecutive failed unlock attempts.
	KeyAppLockFailedAttempts = "app_lock_failed_attempts"
	// KeyAppLockLockedUntil holds the lockout expiry in seconds since the Unix epoch.
	KeyAppLockLockedUntil = "app_lock_locked_until"
)

// Legacy preference keys. They are only read by the migration engine and
// deleted once consumed.
const (
	KeyLegacyPassword          = "encrypted_passphrase"
	KeyLegacyIV                = "passphrase_iv"
	KeyLegacyEncryptionEnabled = "encryption_enabled"
	KeyLegacyBiometric         = "biometric_enabled"
	KeyLegacyPWGenerated       = "password_generated"
)

// LegacyKeys lists every key removed by a legacy cleanup.
var LegacyKeys = []string{
	KeyLegacyPassword,
	KeyLegacyIV,
	KeyLegacyEncryptionEnabled,
	KeyLegacyBiometric,
	KeyLegacyPWGenerated,
}

// PreferenceWriter mutates several preference keys inside one atomic write.
type PreferenceWriter interface {
	Put(key string, value []byte) error
	PutBool(key string, value bool) error
	Delete(keys ...string) error
}
