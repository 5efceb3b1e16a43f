package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/celox/clipvault/internal/applock/http/dto"
	applockUseCase "github.com/celox/clipvault/internal/applock/usecase"
)

// RunLockEnable turns the app lock on. With generate a random password is
// created and printed once; otherwise the password is prompted for when empty.
func RunLockEnable(
	ctx context.Context,
	appLock applockUseCase.AppLockUseCase,
	io IOTuple,
	password string,
	generate, biometric bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if generate {
		if password != "" {
			return fmt.Errorf("--password cannot be combined with --generate")
		}
		generated, err := appLock.EnableGenerated(ctx, biometric)
		if err != nil {
			return fmt.Errorf("failed to enable app lock: %w", err)
		}
		if format == "json" {
			return writeJSON(io.Writer, dto.GeneratedPasswordResponse{Password: generated})
		}
		_, _ = fmt.Fprintln(io.Writer, "App lock enabled. Store this password safely, it is not shown again:")
		_, _ = fmt.Fprintln(io.Writer, generated)
		return nil
	}

	password, err := promptLine(io, password, "New app lock password: ")
	if err != nil {
		return err
	}
	if err := appLock.Enable(ctx, password, biometric); err != nil {
		return fmt.Errorf("failed to enable app lock: %w", err)
	}
	return writeLockMessage(io.Writer, format, "App lock enabled")
}

// RunLockDisable turns the app lock off once password verifies.
func RunLockDisable(
	ctx context.Context,
	appLock applockUseCase.AppLockUseCase,
	io IOTuple,
	password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := promptLine(io, password, "App lock password: ")
	if err != nil {
		return err
	}
	if err := appLock.Disable(ctx, password); err != nil {
		return fmt.Errorf("failed to disable app lock: %w", err)
	}
	return writeLockMessage(io.Writer, format, "App lock disabled")
}

// RunLockUnlock verifies password. Failed attempts count toward the lockout.
func RunLockUnlock(
	ctx context.Context,
	appLock applockUseCase.AppLockUseCase,
	io IOTuple,
	password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := promptLine(io, password, "App lock password: ")
	if err != nil {
		return err
	}
	if err := appLock.Unlock(ctx, password); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	return writeLockMessage(io.Writer, format, "Unlocked")
}

// RunLockChangePassword replaces the app lock password.
func RunLockChangePassword(
	ctx context.Context,
	appLock applockUseCase.AppLockUseCase,
	io IOTuple,
	oldPassword, newPassword, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	oldPassword, err := promptLine(io, oldPassword, "Current app lock password: ")
	if err != nil {
		return err
	}
	newPassword, err = promptLine(io, newPassword, "New app lock password: ")
	if err != nil {
		return err
	}
	if err := appLock.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change app lock password: %w", err)
	}
	return writeLockMessage(io.Writer, format, "App lock password changed")
}

// RunLockStatus prints whether the app lock is enabled and any active lockout.
func RunLockStatus(
	ctx context.Context,
	appLock applockUseCase.AppLockUseCase,
	writer io.Writer,
	format string,
	now time.Time,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	status, err := appLock.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read app lock status: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.MapStatusToResponse(status))
	}

	if !status.Enabled {
		_, _ = fmt.Fprintln(writer, "App lock: disabled")
		return nil
	}
	_, _ = fmt.Fprintln(writer, "App lock: enabled")
	_, _ = fmt.Fprintf(writer, "Biometric: %t\n", status.Biometric)
	_, _ = fmt.Fprintf(writer, "Generated password: %t\n", status.PasswordGenerated)
	if status.Locked(now) {
		_, _ = fmt.Fprintf(writer, "Locked until: %s\n", status.LockedUntil.Local().Format(time.DateTime))
	} else if status.FailedAttempts > 0 {
		_, _ = fmt.Fprintf(writer, "Failed attempts: %d\n", status.FailedAttempts)
	}
	return nil
}

func writeLockMessage(w io.Writer, format, message string) error {
	if format == "json" {
		return writeJSON(w, map[string]string{"message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
