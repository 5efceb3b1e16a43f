package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	cryptoUsecase "github.com/celox/clipvault/internal/crypto/usecase"
	"github.com/celox/clipvault/internal/database"
	apperrors "github.com/celox/clipvault/internal/errors"
	migrationDomain "github.com/celox/clipvault/internal/migration/domain"
)

type migrationUseCase struct {
	passphrases cryptoUsecase.PassphraseLifecycle
	appLock     AppLockAdopter
	engine      database.Engine
	dbPath      string
	logger      *slog.Logger

	mu sync.Mutex
}

// NewMigrationUseCase creates the startup migration for the database at dbPath.
func NewMigrationUseCase(
	passphrases cryptoUsecase.PassphraseLifecycle,
	appLock AppLockAdopter,
	engine database.Engine,
	dbPath string,
	logger *slog.Logger,
) MigrationUseCase {
	return &migrationUseCase{
		passphrases: passphrases,
		appLock:     appLock,
		engine:      engine,
		dbPath:      dbPath,
		logger:      logger,
	}
}

func (m *migrationUseCase) Inputs(ctx context.Context) (migrationDomain.Inputs, error) {
	var in migrationDomain.Inputs

	migrated, err := m.passphrases.IsMigrated(ctx)
	if err != nil {
		return in, err
	}
	in.Migrated = migrated
	if migrated {
		return in, nil
	}

	// A legacy record that cannot be decrypted counts as absent.
	stored, err := m.passphrases.HasLegacyPassword(ctx)
	if err != nil {
		return in, err
	}
	if stored {
		_, in.HasLegacyPassword, err = m.passphrases.LegacyPassword(ctx)
		if err != nil {
			return in, err
		}
	}
	_, in.HasPassphrase, err = m.passphrases.Current(ctx)
	if err != nil {
		return in, err
	}

	kind, err := m.engine.Inspect(m.dbPath)
	if err != nil {
		return in, err
	}
	in.DatabaseExists = kind != database.FileAbsent
	in.DatabaseSealed = kind == database.FileSealed
	return in, nil
}

func (m *migrationUseCase) Run(ctx context.Context) migrationDomain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	result := migrationDomain.Result{AttemptID: uuid.Must(uuid.NewV7())}
	logger := m.logger.With(slog.String("attempt_id", result.AttemptID.String()))

	in, err := m.Inputs(ctx)
	if err != nil {
		return m.abort(logger, result, start, err)
	}
	result.Path = migrationDomain.Plan(in)
	logger = logger.With(slog.String("path", result.Path.String()))

	switch result.Path {
	case migrationDomain.PathNone:
		result.Migrated = true
		result.Duration = time.Since(start)
		return result
	case migrationDomain.PathAbort:
		return m.abort(logger, result, start, migrationDomain.ErrLegacyPasswordMissing)
	case migrationDomain.PathAdoptLegacy:
		err = m.adoptLegacy(ctx, in)
	case migrationDomain.PathEncryptPlain:
		err = m.encryptPlain(ctx, result.AttemptID, in.HasLegacyPassword)
	case migrationDomain.PathFresh:
	}
	if err != nil {
		return m.abort(logger, result, start, err)
	}

	if err := m.passphrases.MarkMigrated(ctx); err != nil {
		return m.abort(logger, result, start, err)
	}

	result.Migrated = true
	result.Duration = time.Since(start)
	logger.Info("migration completed", slog.Duration("duration", result.Duration))
	return result
}

func (m *migrationUseCase) Migrate(ctx context.Context) error {
	return m.Run(ctx).Err
}

func (m *migrationUseCase) abort(
	logger *slog.Logger,
	result migrationDomain.Result,
	start time.Time,
	cause error,
) migrationDomain.Result {
	result.Aborted = true
	result.Err = fmt.Errorf("%w: %w", migrationDomain.ErrMigrationAborted, cause)
	result.Duration = time.Since(start)
	logger.Error("migration aborted", slog.Any("error", cause))
	return result
}

// adoptLegacy makes the legacy password the database passphrase. The sealed
// database (if any) is already keyed with it, unless an earlier attempt sealed
// it under the current passphrase and failed afterwards; the current
// passphrase is then kept.
func (m *migrationUseCase) adoptLegacy(ctx context.Context, in migrationDomain.Inputs) error {
	password, ok, err := m.passphrases.LegacyPassword(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return migrationDomain.ErrLegacyPasswordMissing
	}

	if in.DatabaseSealed {
		keep, err := m.keepsCurrentPassphrase(ctx, password, in.HasPassphrase)
		if err != nil {
			return err
		}
		if keep {
			return m.consumeLegacy(ctx, password)
		}
	}

	if err := m.passphrases.Set(ctx, password); err != nil {
		return apperrors.Wrap(err, "failed to adopt legacy password")
	}
	return m.consumeLegacy(ctx, password)
}

// keepsCurrentPassphrase decides which known password opens the sealed
// database. It fails when neither does.
func (m *migrationUseCase) keepsCurrentPassphrase(ctx context.Context, legacy string, hasCurrent bool) (bool, error) {
	if hasCurrent {
		current, ok, err := m.passphrases.Current(ctx)
		if err != nil {
			return false, err
		}
		if ok && current != legacy {
			opens, err := m.opens(ctx, current)
			if err != nil || opens {
				return opens, err
			}
		}
	}

	opens, err := m.opens(ctx, legacy)
	if err != nil {
		return false, err
	}
	if !opens {
		return false, migrationDomain.ErrPassphraseMismatch
	}
	return false, nil
}

// opens reports whether passphrase unseals the database. Errors other than a
// wrong passphrase are returned.
func (m *migrationUseCase) opens(ctx context.Context, passphrase string) (bool, error) {
	conn, err := m.engine.Open(ctx, m.dbPath, passphrase)
	if apperrors.Is(err, database.ErrWrongPassphrase) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "failed to open sealed database")
	}
	return true, conn.Close()
}

// consumeLegacy carries the legacy unlock settings over to the app lock and
// deletes the legacy records.
func (m *migrationUseCase) consumeLegacy(ctx context.Context, password string) error {
	biometric, err := m.passphrases.LegacyBiometric(ctx)
	if err != nil {
		return err
	}
	generated, err := m.passphrases.LegacyPasswordGenerated(ctx)
	if err != nil {
		return err
	}
	if err := m.appLock.AdoptLegacy(ctx, password, biometric, generated); err != nil {
		return apperrors.Wrap(err, "failed to carry over legacy unlock settings")
	}
	return m.passphrases.ClearLegacy(ctx)
}

// encryptPlain seals a plaintext database under the current passphrase.
func (m *migrationUseCase) encryptPlain(ctx context.Context, attemptID uuid.UUID, hasLegacy bool) error {
	passphrase, err := m.passphrases.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	tmp := filepath.Join(
		filepath.Dir(m.dbPath),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(m.dbPath), attemptID),
	)
	if err := m.exportAndVerify(ctx, tmp, passphrase); err != nil {
		removeTemp(tmp)
		return err
	}

	// Rename replaces the original in one step.
	if err := os.Rename(tmp, m.dbPath); err != nil {
		removeTemp(tmp)
		return fmt.Errorf("failed to replace plaintext database: %w", err)
	}
	if err := database.RemoveSideFiles(m.dbPath); err != nil {
		m.logger.Warn("failed to remove database side files", slog.Any("error", err))
	}

	if !hasLegacy {
		return nil
	}
	password, ok, err := m.passphrases.LegacyPassword(ctx)
	if err != nil || !ok {
		return err
	}
	return m.consumeLegacy(ctx, password)
}

func (m *migrationUseCase) exportAndVerify(ctx context.Context, tmp, passphrase string) error {
	if err := m.engine.Export(ctx, m.dbPath, "", tmp, passphrase); err != nil {
		return apperrors.Wrap(err, "failed to export plaintext database")
	}

	conn, err := m.engine.Open(ctx, tmp, passphrase)
	if err != nil {
		return apperrors.Wrap(err, "failed to verify exported database")
	}
	return conn.Close()
}

// removeTemp deletes an unfinished export and its journal. Missing files are ignored.
func removeTemp(tmp string) {
	_ = os.Remove(tmp)
	_ = database.RemoveSideFiles(tmp)
}
