package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VideoMetadata is the descriptive metadata resolved from the video index.
// Immutable once fetched.
type VideoMetadata struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ChannelName  string    `json:"channel_name"`
	Duration     int       `json:"duration"`
	PublishedAt  time.Time `json:"published_at"`
}

// TranscriptSegment is one caption line with offsets in whole seconds.
type TranscriptSegment struct {
	Text     string `json:"text"`
	Start    int    `json:"start"`
	Duration int    `json:"duration"`
}

// VideoSummary is the output of the summarization task.
type VideoSummary struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Category   string   `json:"category"`
}

// TimestampEntry is one AI-detected key moment in the transcript.
type TimestampEntry struct {
	Seconds     int    `json:"seconds"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DetectedTool is a transient tool mention extracted from a transcript.
// It exists only inside a bundle until the reconciler turns it into a
// catalog row or matches it to one.
type DetectedTool struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	PricingType string   `json:"pricing_type"`
	UseCases    []string `json:"use_cases"`
}

// AnalysisBundle is the aggregated output of one ingestion run: metadata
// plus the three extraction results. It is the unit of work handed between
// pipeline stages and the payload stored on a PendingReview.
type AnalysisBundle struct {
	Metadata   VideoMetadata    `json:"metadata"`
	Summary    VideoSummary     `json:"summary"`
	Timestamps []TimestampEntry `json:"timestamps"`
	Tools      []DetectedTool   `json:"tools"`
}

// ApplyFieldEdit sets a single nested field addressed by a dotted path,
// with list elements addressed by decimal index ("timestamps.2.title").
// The path must resolve to an existing field and indices must be in
// bounds; the edited document must still decode as a valid bundle.
func (b *AnalysisBundle) ApplyFieldEdit(path string, value interface{}) error {
	if path == "" {
		return fmt.Errorf("empty edit path")
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode bundle: %w", err)
	}

	if err := setPath(doc, strings.Split(path, "."), value); err != nil {
		return fmt.Errorf("edit %q: %w", path, err)
	}

	edited, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode edited bundle: %w", err)
	}

	var out AnalysisBundle
	dec := json.NewDecoder(bytes.NewReader(edited))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return fmt.Errorf("edit %q produced an invalid bundle: %w", path, err)
	}

	*b = out
	return nil
}

// setPath walks doc along segs and replaces the addressed leaf. Only
// existing object keys and in-bounds list indices are valid steps.
func setPath(doc interface{}, segs []string, value interface{}) error {
	seg := segs[0]
	last := len(segs) == 1

	switch node := doc.(type) {
	case map[string]interface{}:
		if _, ok := node[seg]; !ok {
			return fmt.Errorf("unknown field %q", seg)
		}
		if last {
			node[seg] = value
			return nil
		}
		return setPath(node[seg], segs[1:], value)

	case []interface{}:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return fmt.Errorf("list index expected, got %q", seg)
		}
		if idx < 0 || idx >= len(node) {
			return fmt.Errorf("index %d out of range (len %d)", idx, len(node))
		}
		if last {
			node[idx] = value
			return nil
		}
		return setPath(node[idx], segs[1:], value)

	default:
		return fmt.Errorf("cannot descend into %q", seg)
	}
}
