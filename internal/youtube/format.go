package youtube

import (
	"fmt"
	"strings"

	"github.com/toolhunt/toolhunt/internal/domain"
)

// PlaceholderTranscript stands in for the transcript when a video has no
// captions, so the extraction prompts still receive well-formed input.
const PlaceholderTranscript = "Transcript unavailable."

// FormatTimestamp renders a second offset as M:SS, or H:MM:SS once the
// video passes the hour mark.
func FormatTimestamp(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatTranscript renders segments as newline-joined "[M:SS] text" lines,
// the shape the extraction prompts expect.
func FormatTranscript(segments []domain.TranscriptSegment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%s] %s", FormatTimestamp(seg.Start), seg.Text))
	}
	return strings.Join(lines, "\n")
}

// Truncate caps a formatted transcript at max characters, keeping the
// prefix. Long videos blow past model context windows otherwise.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
