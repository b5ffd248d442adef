package youtube

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
)

const testBaseURL = "https://yt.test/v3"

// jsonResponder serves body with a JSON content type so resty unmarshals
// it into SetResult/SetError targets.
func jsonResponder(status int, body string) httpmock.Responder {
	return httpmock.NewStringResponder(status, body).
		HeaderSet(http.Header{"Content-Type": []string{"application/json"}})
}

func newTestClient() *Client {
	c := NewClient(&ClientConfig{APIKey: "test-key", BaseURL: testBaseURL})
	httpmock.ActivateNonDefault(c.client.GetClient())
	return c
}

func TestGetVideoMetadata(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/videos`,
		jsonResponder(200, `{
			"items": [{
				"id": "dQw4w9WgXcQ",
				"snippet": {
					"title": "Test Video",
					"description": "A test",
					"channelTitle": "Test Channel",
					"publishedAt": "2025-06-01T12:00:00Z",
					"thumbnails": {
						"medium": {"url": "https://img.test/medium.jpg"},
						"high": {"url": "https://img.test/high.jpg"},
						"maxres": {"url": "https://img.test/maxres.jpg"}
					}
				},
				"contentDetails": {"duration": "PT15M33S"}
			}]
		}`))

	meta, err := c.GetVideoMetadata(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", meta.VideoID)
	assert.Equal(t, "Test Video", meta.Title)
	assert.Equal(t, "Test Channel", meta.ChannelName)
	assert.Equal(t, 933, meta.Duration)
	assert.Equal(t, "https://img.test/maxres.jpg", meta.ThumbnailURL)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), meta.PublishedAt)
}

func TestGetVideoMetadataThumbnailFallback(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/videos`,
		jsonResponder(200, `{
			"items": [{
				"id": "abc12345678",
				"snippet": {
					"title": "No Maxres",
					"channelTitle": "Chan",
					"publishedAt": "2025-06-01T12:00:00Z",
					"thumbnails": {
						"medium": {"url": "https://img.test/medium.jpg"},
						"high": {"url": "https://img.test/high.jpg"}
					}
				},
				"contentDetails": {"duration": "PT45S"}
			}]
		}`))

	meta, err := c.GetVideoMetadata(context.Background(), "abc12345678")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/high.jpg", meta.ThumbnailURL)
}

func TestGetVideoMetadataNotFound(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/videos`,
		jsonResponder(200, `{"items": []}`))

	_, err := c.GetVideoMetadata(context.Background(), "gone4567890")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetVideoMetadataAPIError(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/videos`,
		jsonResponder(403, `{"error": {"code": 403, "message": "quotaExceeded"}}`))

	_, err := c.GetVideoMetadata(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "quotaExceeded")
}

func TestSearch(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/search`,
		jsonResponder(200, `{
			"items": [
				{"id": {"videoId": "video000001"}},
				{"id": {"videoId": "video000002"}}
			]
		}`))

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/videos`,
		jsonResponder(200, `{
			"items": [
				{
					"id": "video000001",
					"snippet": {"title": "Popular", "channelTitle": "A", "publishedAt": "2025-06-02T00:00:00Z", "thumbnails": {}},
					"contentDetails": {"duration": "PT10M"},
					"statistics": {"viewCount": "54321"}
				},
				{
					"id": "video000002",
					"snippet": {"title": "Short", "channelTitle": "B", "publishedAt": "2025-06-03T00:00:00Z", "thumbnails": {}},
					"contentDetails": {"duration": "PT30S"},
					"statistics": {"viewCount": "99"}
				}
			]
		}`))

	results, err := c.Search(context.Background(), "best AI tools", time.Now().AddDate(0, 0, -14), 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "video000001", results[0].VideoID)
	assert.Equal(t, int64(54321), results[0].ViewCount)
	assert.Equal(t, 600, results[0].Duration)
	assert.Equal(t, 30, results[1].Duration)
}

func TestSearchNoHits(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://yt\.test/v3/search`,
		jsonResponder(200, `{"items": []}`))

	results, err := c.Search(context.Background(), "nothing", time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
