// Package service implements the password-protected backup container.
//
// Layout:
//
//	magic "CVBK" | version u32 BE | iv[12] | salt[16] | AES-256-GCM(ciphertext | tag)
//
// The key is PBKDF2-HMAC-SHA256(password, salt) and the plaintext is the
// UTF-8 JSON backup document.
package service

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	"github.com/celox/clipvault/internal/errors"
)

const (
	containerMagic   = "CVBK"
	containerVersion = uint32(1)
	ivSize           = 12
	saltSize         = 16
	headerSize       = len(containerMagic) + 4 + ivSize + saltSize

	// DefaultIterations is the PBKDF2 iteration count of version 1 containers.
	DefaultIterations = 100_000
)

// Codec encodes and decodes backup containers. It is safe for concurrent use.
type Codec struct {
	iterations int
	now        func() time.Time
}

// NewCodec creates a Codec for version 1 containers.
func NewCodec() *Codec {
	return &Codec{iterations: DefaultIterations, now: time.Now}
}

// NewCodecWithIterations creates a Codec deriving keys with a custom iteration
// count. Containers it writes can only be read by a Codec with the same count.
func NewCodecWithIterations(iterations int, now func() time.Time) *Codec {
	return &Codec{iterations: iterations, now: now}
}

// Encode serializes entries into a new container sealed with password.
func (c *Codec) Encode(entries []backupDomain.Entry, password string) ([]byte, error) {
	if password == "" {
		return nil, backupDomain.ErrEmptyPassword
	}

	plaintext, err := json.Marshal(backupDomain.NewDocument(entries, c.now()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal backup document")
	}
	defer memguard.WipeBytes(plaintext)

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	cipher, err := c.cipher(password, salt)
	if err != nil {
		return nil, err
	}

	ciphertext, iv, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt backup")
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(ciphertext))
	buf.WriteString(containerMagic)
	_ = binary.Write(&buf, binary.BigEndian, containerVersion)
	buf.Write(iv)
	buf.Write(salt)
	buf.Write(ciphertext)
	return buf.Bytes(), nil
}

// Decode opens a container and returns its entries.
func (c *Codec) Decode(data []byte, password string) ([]backupDomain.Entry, error) {
	doc, err := c.DecodeDocument(data, password)
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// DecodeDocument opens a container and returns the whole document. The header
// is validated before any key derivation; a password that does not match,
// empty included, fails authentication.
func (c *Codec) DecodeDocument(data []byte, password string) (*backupDomain.Document, error) {
	if len(data) < headerSize {
		return nil, backupDomain.ErrInvalidContainer
	}
	if string(data[:len(containerMagic)]) != containerMagic {
		return nil, backupDomain.ErrInvalidContainer
	}

	offset := len(containerMagic)
	version := binary.BigEndian.Uint32(data[offset:])
	if version != containerVersion {
		return nil, &backupDomain.UnsupportedVersionError{Version: version}
	}
	offset += 4

	iv := data[offset : offset+ivSize]
	offset += ivSize
	salt := data[offset : offset+saltSize]
	offset += saltSize

	cipher, err := c.cipher(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(data[offset:], iv, nil)
	if err != nil {
		return nil, backupDomain.ErrAuthenticationFailed
	}
	defer memguard.WipeBytes(plaintext)

	var doc backupDomain.Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", backupDomain.ErrInvalidContainer, err)
	}
	if doc.Entries == nil {
		doc.Entries = []backupDomain.Entry{}
	}
	return &doc, nil
}

func (c *Codec) cipher(password string, salt []byte) (*cryptoService.Cipher, error) {
	pass := []byte(password)
	defer memguard.WipeBytes(pass)

	key := pbkdf2.Key(pass, salt, c.iterations, cryptoDomain.KeySize, sha256.New)
	defer memguard.WipeBytes(key)

	cipher, err := cryptoService.NewAESGCM(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create backup cipher")
	}
	return cipher, nil
}
