package dto

import (
	"time"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// ClipResponse represents a clip in API responses.
type ClipResponse struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Timestamp  int64     `json:"timestamp"`
	Pinned     bool      `json:"pinned"`
	CapturedAt time.Time `json:"captured_at"`
}

// MapClipToResponse converts a domain entry to an API response.
func MapClipToResponse(entry *clipsDomain.ClipEntry) ClipResponse {
	return ClipResponse{
		ID:         entry.ID,
		Content:    entry.Content,
		Timestamp:  entry.Timestamp,
		Pinned:     entry.Pinned,
		CapturedAt: entry.CapturedAt(),
	}
}

// ListClipsResponse represents a page of the history.
type ListClipsResponse struct {
	Data  []ClipResponse `json:"data"`
	Total int64          `json:"total"`
}

// MapClipsToListResponse converts domain entries to a list response.
func MapClipsToListResponse(entries []*clipsDomain.ClipEntry, total int64) ListClipsResponse {
	data := make([]ClipResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, MapClipToResponse(entry))
	}
	return ListClipsResponse{Data: data, Total: total}
}

// InsertClipResponse tells what an insert did.
type InsertClipResponse struct {
	Outcome string `json:"outcome"`
	ID      int64  `json:"id,omitempty"`
}

// MapInsertResultToResponse converts an insert result to an API response.
func MapInsertResultToResponse(result clipsDomain.InsertResult) InsertClipResponse {
	return InsertClipResponse{
		Outcome: result.Outcome.String(),
		ID:      result.ID,
	}
}

// AffectedResponse reports how many entries a batch call changed.
type AffectedResponse struct {
	Affected int64 `json:"affected"`
}
