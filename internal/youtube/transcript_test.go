package youtube

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
)

const watchPageHTML = `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"https://cap.test/asr","languageCode":"en","kind":"asr"},` +
	`{"baseUrl":"https://cap.test/manual","languageCode":"en","kind":""}` +
	`]}},"other":{"nested":"{}"}};</script></html>`

const timedTextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.12" dur="3.5">hello &amp; welcome</text>
	<text start="3.9" dur="2.1">to the show</text>
	<text start="6.0" dur="1.0">   </text>
</transcript>`

func newTestFetcher() *TranscriptFetcher {
	f := NewTranscriptFetcher()
	httpmock.ActivateNonDefault(f.client.GetClient())
	return f
}

func TestTranscriptFetch(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://www\.youtube\.com/watch`,
		httpmock.NewStringResponder(200, watchPageHTML))
	httpmock.RegisterResponder("GET", "https://cap.test/manual",
		httpmock.NewStringResponder(200, timedTextXML))

	segments, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "hello & welcome", segments[0].Text)
	assert.Equal(t, 0, segments[0].Start)
	assert.Equal(t, 3, segments[0].Duration)
	assert.Equal(t, "to the show", segments[1].Text)
	assert.Equal(t, 3, segments[1].Start)
}

func TestTranscriptFetchPrefersManualTrack(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://www\.youtube\.com/watch`,
		httpmock.NewStringResponder(200, watchPageHTML))
	httpmock.RegisterResponder("GET", "https://cap.test/manual",
		httpmock.NewStringResponder(200, timedTextXML))
	httpmock.RegisterResponder("GET", "https://cap.test/asr",
		httpmock.NewStringResponder(500, "should not be called"))

	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	info := httpmock.GetCallCountInfo()
	assert.Zero(t, info["GET https://cap.test/asr"])
}

func TestTranscriptFetchNoCaptions(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://www\.youtube\.com/watch`,
		httpmock.NewStringResponder(200, `<html><script>var ytInitialPlayerResponse = {"videoDetails":{"videoId":"x"}};</script></html>`))

	_, err := f.Fetch(context.Background(), "nocaps12345")
	assert.ErrorIs(t, err, domain.ErrTranscriptUnavailable)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple object",
			input: `{"a":1};rest`,
			want:  `{"a":1}`,
		},
		{
			name:  "nested braces",
			input: `{"a":{"b":{"c":2}}}trailing`,
			want:  `{"a":{"b":{"c":2}}}`,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"a":"}{","b":"\"}"}tail`,
			want:  `{"a":"}{","b":"\"}"}`,
		},
		{
			name:  "string ending in escaped backslash",
			input: `{"path":"C:\\","b":1}tail`,
			want:  `{"path":"C:\\","b":1}`,
		},
		{
			name:  "unterminated",
			input: `{"a":1`,
			want:  "",
		},
		{
			name:  "not an object",
			input: `[1,2,3]`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONObject([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, string(got))
			}
		})
	}
}
