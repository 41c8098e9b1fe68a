package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-hub/internal/store"
)

func newRequest(t *testing.T, query string) *http.Request {
	t.Helper()
	url := "/api/rooms"
	if query != "" {
		url += "?" + query
	}
	return httptest.NewRequest(http.MethodGet, url, nil)
}

func TestToRoomResponse(t *testing.T) {
	now := time.Now()
	r := store.Room{
		ID:           "r1",
		Name:         "design",
		Description:  "sketches",
		CreatorID:    "u1",
		CreatorName:  "ann",
		Private:      true,
		PasswordHash: "$2a$10$secret",
		Color:        "#10b981",
		ImageURL:     "https://example.com/cover.png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	resp := toRoomResponse(r)

	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, "https://example.com/cover.png", resp.ImageURL)
	assert.True(t, resp.Private)

	// The password hash must never reach the wire
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"imageUrl"`)
}

func TestQueryInt_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 20},
		{"valid", "limit=5", 5},
		{"garbage", "limit=abc", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(t, tt.query)
			assert.Equal(t, tt.want, queryInt(r, "limit", 20))
		})
	}
}
