package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

func TestInsertClipRequest_Validate(t *testing.T) {
	assert.NoError(t, (&InsertClipRequest{Content: "copied"}).Validate())
	assert.Error(t, (&InsertClipRequest{}).Validate())
	assert.Error(t, (&InsertClipRequest{Content: "   "}).Validate())
}

func TestRestoreClipRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     RestoreClipRequest
		wantErr bool
	}{
		{name: "original id", req: RestoreClipRequest{ID: 3, Content: "x", Timestamp: 10}},
		{name: "new id", req: RestoreClipRequest{Content: "x", Timestamp: 10}},
		{name: "negative id", req: RestoreClipRequest{ID: -1, Content: "x", Timestamp: 10}, wantErr: true},
		{name: "blank content", req: RestoreClipRequest{ID: 3, Content: " ", Timestamp: 10}, wantErr: true},
		{name: "missing timestamp", req: RestoreClipRequest{ID: 3, Content: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	req := RestoreClipRequest{ID: 3, Content: "x", Timestamp: 10, Pinned: true}
	assert.Equal(t, &clipsDomain.ClipEntry{ID: 3, Content: "x", Timestamp: 10, Pinned: true}, req.ToEntry())
}

func TestBatchRequests_Validate(t *testing.T) {
	assert.NoError(t, (&BatchPinRequest{IDs: []int64{1}, Pinned: true}).Validate())
	assert.Error(t, (&BatchPinRequest{}).Validate())
	assert.Error(t, (&BatchPinRequest{IDs: []int64{-2}}).Validate())

	assert.NoError(t, (&BatchDeleteRequest{IDs: []int64{1, 2}}).Validate())
	assert.Error(t, (&BatchDeleteRequest{IDs: []int64{}}).Validate())
}

func TestMapClipsToListResponse(t *testing.T) {
	resp := MapClipsToListResponse(nil, 0)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)

	resp = MapClipsToListResponse([]*clipsDomain.ClipEntry{{ID: 1, Content: "a", Timestamp: 1000}}, 1)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "a", resp.Data[0].Content)
	assert.Equal(t, int64(1), resp.Data[0].CapturedAt.Unix())
}
