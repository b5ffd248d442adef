package youtube

import (
	"regexp"

	"github.com/toolhunt/toolhunt/internal/domain"
)

// videoIDPatterns cover the URL shapes users actually paste: full watch
// URLs (with or without extra query params), short youtu.be links, and
// embed URLs. Video IDs are always 11 characters.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-char video ID out of a YouTube URL.
// Parameters:
//   - rawURL: URL as submitted by the user.
// Returns:
//   - string: extracted video ID.
//   - error: domain.ErrInvalidInput if no pattern matches.
func ExtractVideoID(rawURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], nil
		}
	}
	return "", domain.ErrInvalidInput
}

// WatchURL returns the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

var isoDurationRE = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO 8601 duration like "PT1H2M3S" to total
// seconds. Missing components count as zero; unparseable input yields zero.
func ParseISODuration(iso string) int {
	m := isoDurationRE.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	return atoi(m[1])*3600 + atoi(m[2])*60 + atoi(m[3])
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
