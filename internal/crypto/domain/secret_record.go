package domain

import (
	"encoding/json"
	"fmt"
)

// SecretRecord is a short secret encrypted under the master key.
//
// Ciphertext carries the 16-byte authentication tag appended by the AEAD.
// The record is persisted as a single JSON value so it is either absent or
// complete after a write.
type SecretRecord struct {
	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`
}

// Validate checks the structural invariants of the record.
func (r *SecretRecord) Validate() error {
	if len(r.IV) != NonceSize {
		return fmt.Errorf("%w: iv must be %d bytes", ErrDecryptionFailed, NonceSize)
	}
	if len(r.Ciphertext) < 16 {
		return fmt.Errorf("%w: ciphertext shorter than tag", ErrDecryptionFailed)
	}
	return nil
}

// MarshalRecord encodes the record for the preference namespace.
func MarshalRecord(r *SecretRecord) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes a record from the preference namespace.
func UnmarshalRecord(data []byte) (*SecretRecord, error) {
	var r SecretRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: malformed record: %v", ErrDecryptionFailed, err)
	}
	return &r, nil
}
