package usecase

import (
	"context"
	"time"

	applockDomain "github.com/celox/clipvault/internal/applock/domain"
	"github.com/celox/clipvault/internal/metrics"
)

// appLockUseCaseWithMetrics decorates AppLockUseCase with metrics instrumentation.
type appLockUseCaseWithMetrics struct {
	next    AppLockUseCase
	metrics metrics.BusinessMetrics
}

// NewAppLockUseCaseWithMetrics wraps an AppLockUseCase with metrics recording.
func NewAppLockUseCaseWithMetrics(useCase AppLockUseCase, m metrics.BusinessMetrics) AppLockUseCase {
	return &appLockUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *appLockUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "applock", operation, start, err)
}

func (a *appLockUseCaseWithMetrics) Enable(ctx context.Context, password string, biometric bool) error {
	start := time.Now()
	err := a.next.Enable(ctx, password, biometric)
	a.record(ctx, "applock_enable", start, err)
	return err
}

func (a *appLockUseCaseWithMetrics) EnableGenerated(ctx context.Context, biometric bool) (string, error) {
	start := time.Now()
	password, err := a.next.EnableGenerated(ctx, biometric)
	a.record(ctx, "applock_enable_generated", start, err)
	return password, err
}

func (a *appLockUseCaseWithMetrics) Disable(ctx context.Context, password string) error {
	start := time.Now()
	err := a.next.Disable(ctx, password)
	a.record(ctx, "applock_disable", start, err)
	return err
}

func (a *appLockUseCaseWithMetrics) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, oldPassword, newPassword)
	a.record(ctx, "applock_change_password", start, err)
	return err
}

// Unlock records wrong passwords and lockouts with the error status.
func (a *appLockUseCaseWithMetrics) Unlock(ctx context.Context, password string) error {
	start := time.Now()
	err := a.next.Unlock(ctx, password)
	a.record(ctx, "applock_unlock", start, err)
	return err
}

func (a *appLockUseCaseWithMetrics) SetBiometric(ctx context.Context, enabled bool) error {
	start := time.Now()
	err := a.next.SetBiometric(ctx, enabled)
	a.record(ctx, "applock_set_biometric", start, err)
	return err
}

func (a *appLockUseCaseWithMetrics) Status(ctx context.Context) (*applockDomain.Status, error) {
	start := time.Now()
	status, err := a.next.Status(ctx)
	a.record(ctx, "applock_status", start, err)
	return status, err
}

func (a *appLockUseCaseWithMetrics) AdoptLegacy(ctx context.Context, password string, biometric, generated bool) error {
	start := time.Now()
	err := a.next.AdoptLegacy(ctx, password, biometric, generated)
	a.record(ctx, "applock_adopt_legacy", start, err)
	return err
}
