package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/toolhunt/toolhunt/internal/domain"
)

// Transcript fetching works by scraping the watch page for the
// ytInitialPlayerResponse blob, picking a caption track, and downloading
// its timedtext XML. No API key required, works from any IP.

const playerResponseMarker = "ytInitialPlayerResponse = "

const watchPageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// TranscriptFetcher downloads caption tracks for videos.
type TranscriptFetcher struct {
	client *resty.Client
}

// NewTranscriptFetcher creates a TranscriptFetcher with its own HTTP client.
func NewTranscriptFetcher() *TranscriptFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", watchPageUserAgent)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	return &TranscriptFetcher{client: client}
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

// Fetch downloads the transcript for a video as timed segments.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: 11-character video ID.
// Returns:
//   - []domain.TranscriptSegment: caption lines with second offsets.
//   - error: domain.ErrTranscriptUnavailable wrapped with the cause when
//     the video has no usable captions.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	track, err := f.findCaptionTrack(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscriptUnavailable, err)
	}

	segments, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscriptUnavailable, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty caption track", domain.ErrTranscriptUnavailable)
	}
	return segments, nil
}

// findCaptionTrack scrapes the watch page and extracts the best caption
// track from ytInitialPlayerResponse.
func (f *TranscriptFetcher) findCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("watch page: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("watch page HTTP %d", resp.StatusCode())
	}

	body := resp.Body()
	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("player response not found in watch page")
	}
	jsonData := extractJSONObject(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("malformed player response")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode player response: %v", err)
	}
	if player.Captions == nil {
		return nil, fmt.Errorf("no captions on video")
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks on video")
	}
	track := pickCaptionTrack(tracks)
	return &track, nil
}

// pickCaptionTrack prefers a manually-authored English track, then
// auto-generated English, then whatever comes first.
func pickCaptionTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText downloads and parses a timedtext XML caption URL into
// segments. Offsets are floored to whole seconds.
func (f *TranscriptFetcher) fetchTimedText(ctx context.Context, baseURL string) ([]domain.TranscriptSegment, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(baseURL)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("timedtext HTTP %d", resp.StatusCode())
	}

	var tt timedText
	if err := xml.Unmarshal(resp.Body(), &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %v", err)
	}

	segments := make([]domain.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, domain.TranscriptSegment{
			Text:     text,
			Start:    int(math.Floor(line.Start)),
			Duration: int(math.Floor(line.Dur)),
		})
	}
	return segments, nil
}

// extractJSONObject extracts a complete JSON object starting at b[0] == '{'
// by tracking brace depth, string state included.
func extractJSONObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inStr {
			// escaped consumes exactly one character, so a run of
			// backslashes toggles it and `\\"` still closes the string
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
