package database

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
)

const (
	testIterations    = 1000
	testMaxIterations = testIterations * maxIterationsFactor
)

func TestSealKey_RoundTrip(t *testing.T) {
	manager := cryptoService.NewAEADManager()
	image := []byte("\x00\x00\x00\x0fCREATE TABLE t()")

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			key, err := newSealKey("passphrase", testIterations, alg)
			require.NoError(t, err)

			sealed, err := key.seal(manager, image)
			require.NoError(t, err)
			assert.Equal(t, sealedMagic, string(sealed[:4]))
			assert.Equal(t, sealedVersion, binary.BigEndian.Uint32(sealed[4:8]))
			assert.Equal(t, algorithmIDs[alg], sealed[8])
			assert.Equal(t, uint32(testIterations), binary.BigEndian.Uint32(sealed[9:13]))
			assert.Len(t, sealed, sealedHeaderSize+len(image)+sealedTagSize)

			opened, reopenedKey, err := unseal(manager, sealed, "passphrase", testMaxIterations)
			require.NoError(t, err)
			assert.Equal(t, image, opened)
			assert.Equal(t, key.salt, reopenedKey.salt)
			assert.Equal(t, alg, reopenedKey.algorithm)
		})
	}
}

func TestSealKey_FreshNoncePerSeal(t *testing.T) {
	manager := cryptoService.NewAEADManager()
	key, err := newSealKey("passphrase", testIterations, cryptoDomain.AESGCM)
	require.NoError(t, err)

	first, err := key.seal(manager, []byte("image"))
	require.NoError(t, err)
	second, err := key.seal(manager, []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, first[:sealedAADSize], second[:sealedAADSize])
	assert.NotEqual(t, first[sealedAADSize:sealedHeaderSize], second[sealedAADSize:sealedHeaderSize])
}

func TestNewSealKey_Validation(t *testing.T) {
	_, err := newSealKey("", testIterations, cryptoDomain.AESGCM)
	assert.ErrorIs(t, err, ErrPassphraseRequired)

	_, err = newSealKey("p", testIterations, "rot13")
	assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)

	_, err = newSealKey("p", 0, cryptoDomain.AESGCM)
	assert.Error(t, err)
}

func TestUnseal_Errors(t *testing.T) {
	manager := cryptoService.NewAEADManager()
	key, err := newSealKey("passphrase", testIterations, cryptoDomain.AESGCM)
	require.NoError(t, err)
	sealed, err := key.seal(manager, []byte("image bytes"))
	require.NoError(t, err)

	mutate := func(fn func(b []byte)) []byte {
		c := append([]byte{}, sealed...)
		fn(c)
		return c
	}

	tests := []struct {
		name       string
		data       []byte
		passphrase string
		wantErr    error
	}{
		{"wrong passphrase", sealed, "other", ErrWrongPassphrase},
		{"empty passphrase", sealed, "", ErrPassphraseRequired},
		{"truncated", sealed[:sealedHeaderSize], "passphrase", ErrCorruptDatabase},
		{"bad magic", mutate(func(b []byte) { b[0] = 'X' }), "passphrase", ErrCorruptDatabase},
		{"future version", mutate(func(b []byte) { b[7] = 9 }), "passphrase", ErrUnsupportedFormat},
		{"unknown algorithm", mutate(func(b []byte) { b[8] = 77 }), "passphrase", ErrUnsupportedFormat},
		{"zero iterations", mutate(func(b []byte) { binary.BigEndian.PutUint32(b[9:13], 0) }), "passphrase", ErrCorruptDatabase},
		{"excessive iterations", mutate(func(b []byte) { binary.BigEndian.PutUint32(b[9:13], 0xFFFFFFFF) }), "passphrase", ErrUnsupportedFormat},
		{"iterations just above the cap", mutate(func(b []byte) { binary.BigEndian.PutUint32(b[9:13], testMaxIterations+1) }), "passphrase", ErrUnsupportedFormat},
		{"header tampered", mutate(func(b []byte) { b[20] ^= 0x01 }), "passphrase", ErrWrongPassphrase},
		{"ciphertext tampered", mutate(func(b []byte) { b[len(b)-1] ^= 0x01 }), "passphrase", ErrWrongPassphrase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := unseal(manager, tt.data, tt.passphrase, testMaxIterations)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSQLiteEngine_MaxIterations(t *testing.T) {
	manager := cryptoService.NewAEADManager()

	assert.Equal(t, uint32(minIterationsCeiling), NewSQLiteEngine(EngineConfig{KDFIterations: testIterations}, manager).maxIterations())
	assert.Equal(t, uint32(600000*maxIterationsFactor), NewSQLiteEngine(EngineConfig{KDFIterations: 600000}, manager).maxIterations())
	assert.Equal(t, uint32(minIterationsCeiling), NewSQLiteEngine(EngineConfig{}, manager).maxIterations())
}
