package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/celox/clipvault/internal/errors"
)

func TestClipEntry_CapturedAt(t *testing.T) {
	entry := &ClipEntry{Timestamp: 1_700_000_000_123}

	got := entry.CapturedAt()
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, int64(1_700_000_000_123), got.UnixMilli())
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"", true},
		{" ", true},
		{"\n\t\r ", true},
		{"a", false},
		{"  a  ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBlank(tt.content), "IsBlank(%q)", tt.content)
	}
}

func TestInsertOutcome_String(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "deduped", Deduped.String())
	assert.Equal(t, "suppressed", Suppressed.String())
	assert.Equal(t, "unknown", InsertOutcome(42).String())
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrEmptyContent, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, ErrInvalidClipID, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, ErrClipNotFound, apperrors.ErrNotFound)
}
