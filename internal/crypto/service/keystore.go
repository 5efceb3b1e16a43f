package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"

	"github.com/awnumar/memguard"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

// Keystore owns the master key.
//
// The key is generated once per install and wrapped by the keeper of the
// highest tier that accepts it; only the wrapped form is persisted. Once
// unwrapped, the key lives in a memguard enclave for the rest of the process.
type Keystore struct {
	store  KeyValueStore
	kms    KMSService
	tiers  []cryptoDomain.TierConfig
	logger *slog.Logger

	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewKeystore creates a Keystore. tiers are tried in the given order.
func NewKeystore(
	store KeyValueStore,
	kms KMSService,
	tiers []cryptoDomain.TierConfig,
	logger *slog.Logger,
) *Keystore {
	return &Keystore{
		store:  store,
		kms:    kms,
		tiers:  tiers,
		logger: logger,
	}
}

// MasterKey returns the master key enclave, unwrapping or creating it on first use.
//
// Returns ErrMasterKeyUnwrap if a persisted key cannot be unwrapped by its tier,
// and ErrKeystoreUnavailable if a new key cannot be wrapped by any tier.
func (k *Keystore) MasterKey(ctx context.Context) (*memguard.Enclave, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.enclave != nil {
		return k.enclave, nil
	}

	data, ok, err := k.store.Get(ctx, cryptoDomain.KeyMasterKey)
	if err != nil {
		return nil, err
	}

	var enclave *memguard.Enclave
	if ok {
		enclave, err = k.unwrap(ctx, data)
	} else {
		enclave, err = k.create(ctx)
	}
	if err != nil {
		return nil, err
	}

	k.enclave = enclave
	return enclave, nil
}

// Tier reports the tier holding the persisted master key, if any.
func (k *Keystore) Tier(ctx context.Context) (cryptoDomain.Tier, bool, error) {
	data, ok, err := k.store.Get(ctx, cryptoDomain.KeyMasterKey)
	if err != nil || !ok {
		return "", false, err
	}
	wrapped, err := cryptoDomain.UnmarshalWrappedMasterKey(data)
	if err != nil {
		return "", false, err
	}
	return wrapped.Tier, true, nil
}

func (k *Keystore) unwrap(ctx context.Context, data []byte) (*memguard.Enclave, error) {
	wrapped, err := cryptoDomain.UnmarshalWrappedMasterKey(data)
	if err != nil {
		return nil, err
	}

	uri := k.uriFor(wrapped.Tier)
	if uri == "" {
		return nil, fmt.Errorf("%w: tier %s is not configured", cryptoDomain.ErrMasterKeyUnwrap, wrapped.Tier)
	}

	keeper, err := k.kms.OpenKeeper(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMasterKeyUnwrap, err)
	}
	defer k.closeKeeper(keeper, wrapped.Tier)

	key, err := keeper.Decrypt(ctx, wrapped.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMasterKeyUnwrap, err)
	}
	if len(key) != cryptoDomain.KeySize {
		memguard.WipeBytes(key)
		return nil, fmt.Errorf("%w: unwrapped key has %d bytes", cryptoDomain.ErrMasterKeyUnwrap, len(key))
	}

	// NewEnclave wipes key
	return memguard.NewEnclave(key), nil
}

func (k *Keystore) create(ctx context.Context) (*memguard.Enclave, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}

	for _, tier := range k.tiers {
		if tier.URI == "" {
			continue
		}

		ciphertext, err := k.wrap(ctx, tier, key)
		if err != nil {
			k.logger.Warn("keystore tier unavailable, falling back",
				slog.String("tier", string(tier.Tier)),
				slog.Any("error", err),
			)
			continue
		}

		data, err := cryptoDomain.MarshalWrappedMasterKey(&cryptoDomain.WrappedMasterKey{
			Tier:       tier.Tier,
			Ciphertext: ciphertext,
		})
		if err != nil {
			memguard.WipeBytes(key)
			return nil, err
		}
		if err := k.store.Put(ctx, cryptoDomain.KeyMasterKey, data); err != nil {
			memguard.WipeBytes(key)
			return nil, err
		}

		k.logger.Info("master key created", slog.String("tier", string(tier.Tier)))
		return memguard.NewEnclave(key), nil
	}

	memguard.WipeBytes(key)
	return nil, cryptoDomain.ErrKeystoreUnavailable
}

func (k *Keystore) wrap(ctx context.Context, tier cryptoDomain.TierConfig, key []byte) ([]byte, error) {
	keeper, err := k.kms.OpenKeeper(ctx, tier.URI)
	if err != nil {
		return nil, err
	}
	defer k.closeKeeper(keeper, tier.Tier)

	return keeper.Encrypt(ctx, key)
}

func (k *Keystore) uriFor(tier cryptoDomain.Tier) string {
	for _, t := range k.tiers {
		if t.Tier == tier {
			return t.URI
		}
	}
	return ""
}

func (k *Keystore) closeKeeper(keeper cryptoDomain.KMSKeeper, tier cryptoDomain.Tier) {
	if err := keeper.Close(); err != nil {
		k.logger.Warn("failed to close keeper", slog.String("tier", string(tier)), slog.Any("error", err))
	}
}
