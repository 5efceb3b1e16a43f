package database

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
)

// Sealed file layout:
//
//	magic "CVDB" | version u32 BE | algorithm u8 | kdf iterations u32 BE | salt[16] | nonce[12] | AEAD(dump)
//
// Everything before the nonce is authenticated as additional data. The
// iteration count is read before authentication, so it is capped at
// maxIterationsFactor times the configured count (never below
// minIterationsCeiling).
const (
	sealedMagic      = "CVDB"
	sealedVersion    = uint32(1)
	sealedSaltSize   = 16
	sealedNonceSize  = 12
	sealedAADSize    = 4 + 4 + 1 + 4 + sealedSaltSize
	sealedHeaderSize = sealedAADSize + sealedNonceSize
	sealedTagSize    = 16

	maxIterationsFactor  = 10
	minIterationsCeiling = 1_000_000
)

var algorithmIDs = map[cryptoDomain.Algorithm]byte{
	cryptoDomain.AESGCM:   1,
	cryptoDomain.ChaCha20: 2,
}

func algorithmByID(id byte) (cryptoDomain.Algorithm, bool) {
	for alg, v := range algorithmIDs {
		if v == id {
			return alg, true
		}
	}
	return "", false
}

// sealKey is a passphrase-derived key bound to one salt and parameter set.
// The derived bytes stay in a memguard enclave between persists.
type sealKey struct {
	algorithm  cryptoDomain.Algorithm
	iterations uint32
	salt       []byte
	enclave    *memguard.Enclave
}

func newSealKey(passphrase string, iterations int, alg cryptoDomain.Algorithm) (*sealKey, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	if _, ok := algorithmIDs[alg]; !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("kdf iterations must be positive, got %d", iterations)
	}
	salt := make([]byte, sealedSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return deriveSealKey(passphrase, salt, uint32(iterations), alg), nil
}

func deriveSealKey(passphrase string, salt []byte, iterations uint32, alg cryptoDomain.Algorithm) *sealKey {
	pass := []byte(passphrase)
	defer memguard.WipeBytes(pass)

	key := pbkdf2.Key(pass, salt, int(iterations), cryptoDomain.KeySize, sha256.New)
	return &sealKey{
		algorithm:  alg,
		iterations: iterations,
		salt:       salt,
		enclave:    memguard.NewEnclave(key),
	}
}

func (k *sealKey) header() []byte {
	h := make([]byte, 0, sealedAADSize)
	h = append(h, sealedMagic...)
	h = binary.BigEndian.AppendUint32(h, sealedVersion)
	h = append(h, algorithmIDs[k.algorithm])
	h = binary.BigEndian.AppendUint32(h, k.iterations)
	h = append(h, k.salt...)
	return h
}

func (k *sealKey) cipher(manager cryptoService.AEADManager) (cryptoService.AEAD, error) {
	buf, err := k.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database key: %w", err)
	}
	defer buf.Destroy()
	return manager.CreateCipher(buf.Bytes(), k.algorithm)
}

// seal encrypts a database dump into the sealed file layout.
func (k *sealKey) seal(manager cryptoService.AEADManager, dump []byte) ([]byte, error) {
	aead, err := k.cipher(manager)
	if err != nil {
		return nil, err
	}

	aad := k.header()
	ciphertext, nonce, err := aead.Encrypt(dump, aad)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(aad)+len(nonce)+len(ciphertext))
	out = append(out, aad...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// unseal parses the header, derives the key and decrypts the dump.
// The returned key can seal later snapshots of the same database.
func unseal(manager cryptoService.AEADManager, data []byte, passphrase string, maxIterations uint32) ([]byte, *sealKey, error) {
	if passphrase == "" {
		return nil, nil, ErrPassphraseRequired
	}
	if len(data) < sealedHeaderSize+sealedTagSize || !bytes.Equal(data[:4], []byte(sealedMagic)) {
		return nil, nil, ErrCorruptDatabase
	}

	version := binary.BigEndian.Uint32(data[4:8])
	if version != sealedVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrUnsupportedFormat, version)
	}

	alg, ok := algorithmByID(data[8])
	if !ok {
		return nil, nil, fmt.Errorf("%w: algorithm id %d", ErrUnsupportedFormat, data[8])
	}

	iterations := binary.BigEndian.Uint32(data[9:13])
	if iterations == 0 {
		return nil, nil, ErrCorruptDatabase
	}
	if iterations > maxIterations {
		return nil, nil, fmt.Errorf("%w: kdf iterations %d exceed %d", ErrUnsupportedFormat, iterations, maxIterations)
	}

	salt := append([]byte{}, data[13:sealedAADSize]...)
	nonce := data[sealedAADSize:sealedHeaderSize]
	ciphertext := data[sealedHeaderSize:]

	key := deriveSealKey(passphrase, salt, iterations, alg)
	aead, err := key.cipher(manager)
	if err != nil {
		return nil, nil, err
	}

	dump, err := aead.Decrypt(ciphertext, nonce, data[:sealedAADSize])
	if err != nil {
		return nil, nil, ErrWrongPassphrase
	}
	return dump, key, nil
}
