package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/toolhunt/toolhunt/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client is a thin wrapper over the YouTube Data API v3 for the two
// endpoints the pipeline needs: video lookup and search.
type Client struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// ClientConfig holds configuration for the Data API client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
}

// NewClient creates a new Data API client.
// Parameters:
//   - cfg: API key and optional base URL override (used by tests).
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *ClientConfig) *Client {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(30 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Data API v3 response structures. Only the fields the pipeline reads.

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string         `json:"id"`
	Snippet        videoSnippet   `json:"snippet"`
	ContentDetails contentDetails `json:"contentDetails"`
	Statistics     videoStats     `json:"statistics"`
}

type videoSnippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  time.Time  `json:"publishedAt"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Medium *thumbnail `json:"medium"`
	High   *thumbnail `json:"high"`
	Maxres *thumbnail `json:"maxres"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type contentDetails struct {
	Duration string `json:"duration"`
}

type videoStats struct {
	ViewCount string `json:"viewCount"`
}

type searchListResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

type apiErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// bestThumbnail prefers the highest resolution variant available.
func bestThumbnail(t thumbnails) string {
	switch {
	case t.Maxres != nil:
		return t.Maxres.URL
	case t.High != nil:
		return t.High.URL
	case t.Medium != nil:
		return t.Medium.URL
	default:
		return ""
	}
}

// GetVideoMetadata fetches descriptive metadata for a single video.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: 11-character video ID.
// Returns:
//   - *domain.VideoMetadata: resolved metadata.
//   - error: domain.ErrNotFound if the ID is unknown, domain.ErrUpstream
//     wrapped with detail on transport or API failures.
func (c *Client) GetVideoMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	var result videoListResponse
	var apiErr apiErrorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":   videoID,
			"part": "snippet,contentDetails",
			"key":  c.apiKey,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Get(c.baseURL + "/videos")
	if err != nil {
		return nil, fmt.Errorf("%w: videos request: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		if apiErr.Error != nil {
			return nil, fmt.Errorf("%w: videos HTTP %d: %s", domain.ErrUpstream, resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: videos HTTP %d", domain.ErrUpstream, resp.StatusCode())
	}
	if len(result.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	item := result.Items[0]
	return &domain.VideoMetadata{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
		ChannelName:  item.Snippet.ChannelTitle,
		Duration:     ParseISODuration(item.ContentDetails.Duration),
		PublishedAt:  item.Snippet.PublishedAt,
	}, nil
}

// SearchResult is one candidate from a discovery search, carrying the
// view count and duration the trending filters need.
type SearchResult struct {
	VideoID     string
	Title       string
	ChannelName string
	ViewCount   int64
	Duration    int
	PublishedAt time.Time
}

// Search runs a view-count-ordered video search and resolves statistics
// for each hit with a follow-up videos call.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - query: free-text search query.
//   - publishedAfter: only return videos published after this instant.
//   - maxResults: cap on the number of search hits.
// Returns:
//   - []SearchResult: candidates with statistics resolved.
//   - error: domain.ErrUpstream wrapped with detail on failure.
func (c *Client) Search(ctx context.Context, query string, publishedAfter time.Time, maxResults int) ([]SearchResult, error) {
	var searchResp searchListResponse
	var apiErr apiErrorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":           "id",
			"q":              query,
			"type":           "video",
			"order":          "viewCount",
			"publishedAfter": publishedAfter.UTC().Format(time.RFC3339),
			"maxResults":     strconv.Itoa(maxResults),
			"key":            c.apiKey,
		}).
		SetResult(&searchResp).
		SetError(&apiErr).
		Get(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		if apiErr.Error != nil {
			return nil, fmt.Errorf("%w: search HTTP %d: %s", domain.ErrUpstream, resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: search HTTP %d", domain.ErrUpstream, resp.StatusCode())
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return c.resolveStatistics(ctx, ids)
}

// resolveStatistics fetches snippet, duration, and view counts for a batch
// of video IDs in one call.
func (c *Client) resolveStatistics(ctx context.Context, ids []string) ([]SearchResult, error) {
	var result videoListResponse
	var apiErr apiErrorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":   strings.Join(ids, ","),
			"part": "snippet,contentDetails,statistics",
			"key":  c.apiKey,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Get(c.baseURL + "/videos")
	if err != nil {
		return nil, fmt.Errorf("%w: statistics request: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		if apiErr.Error != nil {
			return nil, fmt.Errorf("%w: statistics HTTP %d: %s", domain.ErrUpstream, resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: statistics HTTP %d", domain.ErrUpstream, resp.StatusCode())
	}

	results := make([]SearchResult, 0, len(result.Items))
	for _, item := range result.Items {
		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		results = append(results, SearchResult{
			VideoID:     item.ID,
			Title:       item.Snippet.Title,
			ChannelName: item.Snippet.ChannelTitle,
			ViewCount:   viewCount,
			Duration:    ParseISODuration(item.ContentDetails.Duration),
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return results, nil
}
