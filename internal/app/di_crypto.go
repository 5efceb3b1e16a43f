package app

import (
	"fmt"
	"os"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoRepository "github.com/celox/clipvault/internal/crypto/repository"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	cryptoUseCase "github.com/celox/clipvault/internal/crypto/usecase"
)

// Preferences returns the preference namespace, opening the bbolt file on first access.
func (c *Container) Preferences() (*cryptoRepository.BoltPreferenceRepository, error) {
	var err error
	c.preferencesInit.Do(func() {
		c.preferences, err = c.initPreferences()
		if err != nil {
			c.initErrors["preferences"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["preferences"]; exists {
		return nil, storedErr
	}
	return c.preferences, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service used to open keystore keepers.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PassphraseGenerator returns the random passphrase generator.
func (c *Container) PassphraseGenerator() cryptoService.PassphraseGenerator {
	c.passphraseGeneratorInit.Do(func() {
		c.passphraseGenerator = cryptoService.NewPassphraseGenerator()
	})
	return c.passphraseGenerator
}

// Keystore returns the tiered master key keystore.
func (c *Container) Keystore() (*cryptoService.Keystore, error) {
	var err error
	c.keystoreInit.Do(func() {
		c.keystore, err = c.initKeystore()
		if err != nil {
			c.initErrors["keystore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keystore"]; exists {
		return nil, storedErr
	}
	return c.keystore, nil
}

// SecretStore returns the secret store.
func (c *Container) SecretStore() (cryptoUseCase.SecretStore, error) {
	var err error
	c.secretStoreInit.Do(func() {
		c.secretStore, err = c.initSecretStore()
		if err != nil {
			c.initErrors["secretStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretStore"]; exists {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// PassphraseLifecycle returns the database passphrase lifecycle.
func (c *Container) PassphraseLifecycle() (cryptoUseCase.PassphraseLifecycle, error) {
	var err error
	c.passphraseLifecycleInit.Do(func() {
		c.passphraseLifecycle, err = c.initPassphraseLifecycle()
		if err != nil {
			c.initErrors["passphraseLifecycle"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passphraseLifecycle"]; exists {
		return nil, storedErr
	}
	return c.passphraseLifecycle, nil
}

// initPreferences creates the data directory and opens the preference file inside it.
func (c *Container) initPreferences() (*cryptoRepository.BoltPreferenceRepository, error) {
	if err := os.MkdirAll(c.config.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	prefs, err := cryptoRepository.OpenBoltPreferenceRepository(c.config.PrefsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return prefs, nil
}

// initKeystore creates the keystore with the configured tiers in preference order.
func (c *Container) initKeystore() (*cryptoService.Keystore, error) {
	prefs, err := c.Preferences()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for keystore: %w", err)
	}

	tiers := []cryptoDomain.TierConfig{
		{Tier: cryptoDomain.TierStrongBox, URI: c.config.KeystoreStrongBoxURI},
		{Tier: cryptoDomain.TierTEE, URI: c.config.KeystoreTEEURI},
	}

	return cryptoService.NewKeystore(prefs, c.KMSService(), tiers, c.Logger()), nil
}

// initSecretStore creates the secret store on top of the keystore.
func (c *Container) initSecretStore() (cryptoUseCase.SecretStore, error) {
	prefs, err := c.Preferences()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for secret store: %w", err)
	}

	keystore, err := c.Keystore()
	if err != nil {
		return nil, fmt.Errorf("failed to get keystore for secret store: %w", err)
	}

	return cryptoUseCase.NewSecretStore(prefs, keystore, c.AEADManager(), c.Logger()), nil
}

// initPassphraseLifecycle creates the passphrase lifecycle with all its dependencies.
func (c *Container) initPassphraseLifecycle() (cryptoUseCase.PassphraseLifecycle, error) {
	secretStore, err := c.SecretStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for passphrase lifecycle: %w", err)
	}

	prefs, err := c.Preferences()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for passphrase lifecycle: %w", err)
	}

	return cryptoUseCase.NewPassphraseLifecycle(secretStore, prefs, c.PassphraseGenerator()), nil
}
