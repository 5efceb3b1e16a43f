package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  SecretRecord
		wantErr bool
	}{
		{
			name:   "valid record",
			record: SecretRecord{Ciphertext: make([]byte, 20), IV: make([]byte, NonceSize)},
		},
		{
			name:    "short iv",
			record:  SecretRecord{Ciphertext: make([]byte, 20), IV: make([]byte, 8)},
			wantErr: true,
		},
		{
			name:    "ciphertext without tag",
			record:  SecretRecord{Ciphertext: make([]byte, 4), IV: make([]byte, NonceSize)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDecryptionFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnmarshalRecord(t *testing.T) {
	t.Run("stored as a single json value", func(t *testing.T) {
		data, err := MarshalRecord(&SecretRecord{Ciphertext: []byte("ct"), IV: []byte("iv")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"ciphertext":"Y3Q=","iv":"aXY="}`, string(data))
	})

	t.Run("malformed value", func(t *testing.T) {
		_, err := UnmarshalRecord([]byte("not json"))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})
}
