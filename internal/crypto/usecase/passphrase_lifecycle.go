package usecase

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	apperrors "github.com/celox/clipvault/internal/errors"
)

type passphraseLifecycle struct {
	secrets   SecretStore
	prefs     PreferenceRepository
	generator cryptoService.PassphraseGenerator

	// mu serializes creation against Set; group collapses concurrent first calls.
	mu    sync.Mutex
	group singleflight.Group
}

// NewPassphraseLifecycle creates a new PassphraseLifecycle.
func NewPassphraseLifecycle(
	secrets SecretStore,
	prefs PreferenceRepository,
	generator cryptoService.PassphraseGenerator,
) PassphraseLifecycle {
	return &passphraseLifecycle{
		secrets:   secrets,
		prefs:     prefs,
		generator: generator,
	}
}

func (p *passphraseLifecycle) GetOrCreate(ctx context.Context) (string, error) {
	v, err, _ := p.group.Do(cryptoDomain.KeyDBPassphrase, func() (any, error) {
		p.mu.Lock()
		defer p.mu.Unlock()

		existing, ok, err := p.secrets.Retrieve(ctx, cryptoDomain.KeyDBPassphrase)
		if err != nil {
			return "", err
		}
		if ok {
			return existing, nil
		}

		passphrase, err := p.generator.Generate(cryptoDomain.PassphraseLength, cryptoDomain.PassphraseAlphabet)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to generate database passphrase")
		}
		if err := p.secrets.Store(ctx, cryptoDomain.KeyDBPassphrase, passphrase); err != nil {
			return "", err
		}
		return passphrase, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *passphraseLifecycle) Current(ctx context.Context) (string, bool, error) {
	return p.secrets.Retrieve(ctx, cryptoDomain.KeyDBPassphrase)
}

func (p *passphraseLifecycle) Set(ctx context.Context, passphrase string) error {
	if strings.TrimSpace(passphrase) == "" {
		return cryptoDomain.ErrInvalidPassphrase
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.secrets.Store(ctx, cryptoDomain.KeyDBPassphrase, passphrase)
}

func (p *passphraseLifecycle) IsMigrated(ctx context.Context) (bool, error) {
	return p.prefs.GetBool(ctx, cryptoDomain.KeyMigrated, false)
}

func (p *passphraseLifecycle) MarkMigrated(ctx context.Context) error {
	return p.prefs.PutBool(ctx, cryptoDomain.KeyMigrated, true)
}

func (p *passphraseLifecycle) HasLegacyPassword(ctx context.Context) (bool, error) {
	return p.secrets.Exists(ctx, cryptoDomain.KeyLegacyPassword)
}

func (p *passphraseLifecycle) LegacyPassword(ctx context.Context) (string, bool, error) {
	return p.secrets.Retrieve(ctx, cryptoDomain.KeyLegacyPassword)
}

func (p *passphraseLifecycle) LegacyBiometric(ctx context.Context) (bool, error) {
	return p.prefs.GetBool(ctx, cryptoDomain.KeyLegacyBiometric, true)
}

func (p *passphraseLifecycle) LegacyPasswordGenerated(ctx context.Context) (bool, error) {
	return p.prefs.GetBool(ctx, cryptoDomain.KeyLegacyPWGenerated, false)
}

func (p *passphraseLifecycle) ClearLegacy(ctx context.Context) error {
	return p.prefs.Delete(ctx, cryptoDomain.LegacyKeys...)
}
