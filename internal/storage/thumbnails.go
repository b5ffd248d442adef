package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ThumbnailArchiver mirrors video thumbnails into object storage so the
// catalog keeps working when the source CDN expires or changes URLs.
type ThumbnailArchiver struct {
	storage ObjectStorage
	client  *resty.Client
}

// NewThumbnailArchiver creates a ThumbnailArchiver over the given storage.
func NewThumbnailArchiver(storage ObjectStorage) *ThumbnailArchiver {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	return &ThumbnailArchiver{
		storage: storage,
		client:  client,
	}
}

// Archive downloads a thumbnail and uploads it under a stable key.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: source video ID, used as the object key.
//   - thumbnailURL: source image URL.
// Returns:
//   - string: object key the thumbnail was stored under.
//   - error: non-nil if the download or upload fails.
func (a *ThumbnailArchiver) Archive(ctx context.Context, videoID, thumbnailURL string) (string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		Get(thumbnailURL)
	if err != nil {
		return "", fmt.Errorf("fetch thumbnail: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch thumbnail: HTTP %d", resp.StatusCode())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := "thumbnails/" + videoID + ".jpg"
	if err := a.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return "", fmt.Errorf("upload thumbnail: %w", err)
	}
	return key, nil
}
