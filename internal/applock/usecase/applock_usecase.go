package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	applockDomain "github.com/celox/clipvault/internal/applock/domain"
	applockService "github.com/celox/clipvault/internal/applock/service"
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	cryptoUsecase "github.com/celox/clipvault/internal/crypto/usecase"
)

// Config holds the lockout policy.
type Config struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

type appLockUseCase struct {
	mu sync.Mutex

	secrets   cryptoUsecase.SecretStore
	prefs     cryptoUsecase.PreferenceRepository
	hasher    applockService.PasswordHasher
	generator cryptoService.PassphraseGenerator
	cfg       Config
	now       func() time.Time
	logger    *slog.Logger
}

// NewAppLockUseCase creates a new AppLockUseCase.
func NewAppLockUseCase(
	secrets cryptoUsecase.SecretStore,
	prefs cryptoUsecase.PreferenceRepository,
	hasher applockService.PasswordHasher,
	generator cryptoService.PassphraseGenerator,
	cfg Config,
	now func() time.Time,
	logger *slog.Logger,
) AppLockUseCase {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &appLockUseCase{
		secrets:   secrets,
		prefs:     prefs,
		hasher:    hasher,
		generator: generator,
		cfg:       cfg,
		now:       now,
		logger:    logger,
	}
}

func (a *appLockUseCase) Enable(ctx context.Context, password string, biometric bool) error {
	if err := applockDomain.ValidatePassword(password); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.enable(ctx, password, biometric, false)
}

func (a *appLockUseCase) EnableGenerated(ctx context.Context, biometric bool) (string, error) {
	password, err := a.generator.Generate(
		applockDomain.GeneratedPasswordLength,
		applockDomain.GeneratedPasswordAlphabet,
	)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.enable(ctx, password, biometric, true); err != nil {
		return "", err
	}
	return password, nil
}

func (a *appLockUseCase) enable(ctx context.Context, password string, biometric, generated bool) error {
	enabled, err := a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockEnabled, false)
	if err != nil {
		return err
	}
	if enabled {
		return applockDomain.ErrAlreadyEnabled
	}
	return a.storePassword(ctx, password, biometric, generated)
}

func (a *appLockUseCase) storePassword(ctx context.Context, password string, biometric, generated bool) error {
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := a.secrets.Store(ctx, cryptoDomain.KeyAppLockPassword, hash); err != nil {
		return err
	}

	return a.prefs.Update(ctx, func(w cryptoDomain.PreferenceWriter) error {
		if err := w.PutBool(cryptoDomain.KeyAppLockEnabled, true); err != nil {
			return err
		}
		if err := w.PutBool(cryptoDomain.KeyAppLockBiometric, biometric); err != nil {
			return err
		}
		if err := w.PutBool(cryptoDomain.KeyAppLockPWGenerated, generated); err != nil {
			return err
		}
		return w.Delete(cryptoDomain.KeyAppLockFailedAttempts, cryptoDomain.KeyAppLockLockedUntil)
	})
}

func (a *appLockUseCase) Disable(ctx context.Context, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.verify(ctx, password); err != nil {
		return err
	}

	if err := a.secrets.Clear(ctx, cryptoDomain.KeyAppLockPassword); err != nil {
		return err
	}
	return a.prefs.Update(ctx, func(w cryptoDomain.PreferenceWriter) error {
		if err := w.PutBool(cryptoDomain.KeyAppLockEnabled, false); err != nil {
			return err
		}
		return w.Delete(
			cryptoDomain.KeyAppLockPWGenerated,
			cryptoDomain.KeyAppLockFailedAttempts,
			cryptoDomain.KeyAppLockLockedUntil,
		)
	})
}

func (a *appLockUseCase) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := applockDomain.ValidatePassword(newPassword); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.verify(ctx, oldPassword); err != nil {
		return err
	}

	biometric, err := a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockBiometric, false)
	if err != nil {
		return err
	}
	return a.storePassword(ctx, newPassword, biometric, false)
}

func (a *appLockUseCase) Unlock(ctx context.Context, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.verify(ctx, password)
}

// verify checks password against the stored verifier and maintains the
// failed-attempt counter. Callers hold a.mu.
func (a *appLockUseCase) verify(ctx context.Context, password string) error {
	enabled, err := a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockEnabled, false)
	if err != nil {
		return err
	}
	if !enabled {
		return applockDomain.ErrNotEnabled
	}

	now := a.now()
	lockedUntil, err := a.prefs.GetInt(ctx, cryptoDomain.KeyAppLockLockedUntil, 0)
	if err != nil {
		return err
	}
	if lockedUntil > 0 && now.Before(time.Unix(int64(lockedUntil), 0)) {
		return applockDomain.ErrLockedOut
	}

	if password == "" {
		return applockDomain.ErrEmptyPassword
	}

	hash, ok, err := a.secrets.Retrieve(ctx, cryptoDomain.KeyAppLockPassword)
	if err != nil {
		return err
	}
	if !ok {
		return applockDomain.ErrVerifierUnavailable
	}

	if a.hasher.Verify(password, hash) {
		return a.prefs.Delete(ctx, cryptoDomain.KeyAppLockFailedAttempts, cryptoDomain.KeyAppLockLockedUntil)
	}

	attempts, err := a.prefs.GetInt(ctx, cryptoDomain.KeyAppLockFailedAttempts, 0)
	if err != nil {
		return err
	}
	attempts++

	if attempts >= a.cfg.MaxAttempts {
		until := now.Add(a.cfg.LockoutDuration)
		a.logger.Warn("app lock locked out after failed attempts",
			slog.Int("attempts", attempts),
			slog.Time("locked_until", until),
		)
		if err := a.prefs.PutInt(ctx, cryptoDomain.KeyAppLockLockedUntil, int(until.Unix())); err != nil {
			return err
		}
		if err := a.prefs.Delete(ctx, cryptoDomain.KeyAppLockFailedAttempts); err != nil {
			return err
		}
		return applockDomain.ErrLockedOut
	}

	if err := a.prefs.PutInt(ctx, cryptoDomain.KeyAppLockFailedAttempts, attempts); err != nil {
		return err
	}
	return applockDomain.ErrWrongPassword
}

func (a *appLockUseCase) SetBiometric(ctx context.Context, enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	lockEnabled, err := a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockEnabled, false)
	if err != nil {
		return err
	}
	if !lockEnabled {
		return applockDomain.ErrNotEnabled
	}
	return a.prefs.PutBool(ctx, cryptoDomain.KeyAppLockBiometric, enabled)
}

func (a *appLockUseCase) Status(ctx context.Context) (*applockDomain.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		status applockDomain.Status
		err    error
	)
	if status.Enabled, err = a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockEnabled, false); err != nil {
		return nil, err
	}
	if status.Biometric, err = a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockBiometric, false); err != nil {
		return nil, err
	}
	if status.PasswordGenerated, err = a.prefs.GetBool(ctx, cryptoDomain.KeyAppLockPWGenerated, false); err != nil {
		return nil, err
	}
	if status.FailedAttempts, err = a.prefs.GetInt(ctx, cryptoDomain.KeyAppLockFailedAttempts, 0); err != nil {
		return nil, err
	}

	lockedUntil, err := a.prefs.GetInt(ctx, cryptoDomain.KeyAppLockLockedUntil, 0)
	if err != nil {
		return nil, err
	}
	if until := time.Unix(int64(lockedUntil), 0).UTC(); lockedUntil > 0 && a.now().Before(until) {
		status.LockedUntil = &until
	}
	return &status, nil
}

func (a *appLockUseCase) AdoptLegacy(ctx context.Context, password string, biometric, generated bool) error {
	if password == "" {
		return applockDomain.ErrEmptyPassword
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// legacy passwords predate the length rule and are adopted as they are
	return a.storePassword(ctx, password, biometric, generated)
}
