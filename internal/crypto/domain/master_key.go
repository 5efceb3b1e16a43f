package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// Tier identifies a hardware class of keystore able to wrap the master key.
//
// Tiers are tried highest-first when the master key is created; the first tier
// whose keeper accepts the key wins and is recorded next to the wrapped key so
// later unwraps go straight to it.
type Tier string

const (
	// TierStrongBox is a dedicated secure element (preferred).
	TierStrongBox Tier = "strongbox"
	// TierTEE is a trusted execution environment (fallback).
	TierTEE Tier = "tee"
)

// TierConfig binds a tier to the keeper URI that serves it.
//
// The URI follows gocloud.dev/secrets conventions, for example
// "awskms://alias/clipvault", "gcpkms://...", "hashivault://..." or
// "base64key://..." for a local key. An empty URI disables the tier.
type TierConfig struct {
	Tier Tier
	URI  string
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap the master key.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// WrappedMasterKey is the persisted form of the 256-bit master key.
//
// The plaintext key never touches disk; only the ciphertext produced by the
// tier's keeper is stored under KeyMasterKey.
type WrappedMasterKey struct {
	Tier       Tier   `json:"tier"`
	Ciphertext []byte `json:"ciphertext"`
}

// MarshalWrappedMasterKey encodes the wrapped key for the preference namespace.
func MarshalWrappedMasterKey(w *WrappedMasterKey) ([]byte, error) {
	return json.Marshal(w)
}

// UnmarshalWrappedMasterKey decodes a wrapped key from the preference namespace.
func UnmarshalWrappedMasterKey(data []byte) (*WrappedMasterKey, error) {
	var w WrappedMasterKey
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: malformed wrapped master key: %v", ErrMasterKeyUnwrap, err)
	}
	if w.Tier == "" || len(w.Ciphertext) == 0 {
		return nil, fmt.Errorf("%w: incomplete wrapped master key", ErrMasterKeyUnwrap)
	}
	return &w, nil
}
