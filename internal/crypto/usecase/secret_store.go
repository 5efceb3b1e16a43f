package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/awnumar/memguard"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	apperrors "github.com/celox/clipvault/internal/errors"
)

type secretStore struct {
	prefs       PreferenceRepository
	keys        cryptoService.MasterKeyProvider
	aeadManager cryptoService.AEADManager
	logger      *slog.Logger
}

// NewSecretStore creates a new SecretStore.
func NewSecretStore(
	prefs PreferenceRepository,
	keys cryptoService.MasterKeyProvider,
	aeadManager cryptoService.AEADManager,
	logger *slog.Logger,
) SecretStore {
	return &secretStore{
		prefs:       prefs,
		keys:        keys,
		aeadManager: aeadManager,
		logger:      logger,
	}
}

func (s *secretStore) Store(ctx context.Context, key, plaintext string) error {
	cipher, err := s.cipher(ctx)
	if err != nil {
		return err
	}

	data := []byte(plaintext)
	defer memguard.WipeBytes(data)

	// The record key is bound as AAD so records cannot be swapped between keys.
	ciphertext, iv, err := cipher.Encrypt(data, []byte(key))
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt secret")
	}

	value, err := cryptoDomain.MarshalRecord(&cryptoDomain.SecretRecord{Ciphertext: ciphertext, IV: iv})
	if err != nil {
		return apperrors.Wrap(err, "failed to encode secret record")
	}

	return s.prefs.Put(ctx, key, value)
}

func (s *secretStore) Retrieve(ctx context.Context, key string) (string, bool, error) {
	plaintext, err := s.Inspect(ctx, key)
	switch {
	case err == nil:
		return plaintext, true, nil
	case apperrors.Is(err, cryptoDomain.ErrSecretNotFound):
		return "", false, nil
	case apperrors.Is(err, cryptoDomain.ErrDecryptionFailed):
		s.logger.Warn("secret record unreadable, treating as absent",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return "", false, nil
	default:
		return "", false, err
	}
}

func (s *secretStore) Inspect(ctx context.Context, key string) (string, error) {
	value, ok, err := s.prefs.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cryptoDomain.ErrSecretNotFound
	}

	record, err := cryptoDomain.UnmarshalRecord(value)
	if err != nil {
		return "", err
	}
	if err := record.Validate(); err != nil {
		return "", err
	}

	cipher, err := s.cipher(ctx)
	if err != nil {
		return "", err
	}

	data, err := cipher.Decrypt(record.Ciphertext, record.IV, []byte(key))
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(data)

	return string(data), nil
}

func (s *secretStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.prefs.Exists(ctx, key)
}

func (s *secretStore) Clear(ctx context.Context, key string) error {
	return s.prefs.Delete(ctx, key)
}

// cipher opens the master key just long enough to build an AES-GCM instance.
func (s *secretStore) cipher(ctx context.Context) (cryptoService.AEAD, error) {
	enclave, err := s.keys.MasterKey(ctx)
	if err != nil {
		return nil, err
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMasterKeyUnwrap, err)
	}
	defer buf.Destroy()

	return s.aeadManager.CreateCipher(buf.Bytes(), cryptoDomain.AESGCM)
}
