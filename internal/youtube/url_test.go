package youtube

import (
	"errors"
	"testing"

	"github.com/toolhunt/toolhunt/internal/domain"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra params before v",
			url:  "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with trailing params",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short URL",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name:    "unrelated URL",
			url:     "https://example.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
		{
			name:    "ID too short",
			url:     "https://youtu.be/short",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want int
	}{
		{name: "full duration", iso: "PT1H2M3S", want: 3723},
		{name: "minutes and seconds", iso: "PT15M33S", want: 933},
		{name: "seconds only", iso: "PT45S", want: 45},
		{name: "hours only", iso: "PT2H", want: 7200},
		{name: "minutes only", iso: "PT10M", want: 600},
		{name: "garbage", iso: "not-a-duration", want: 0},
		{name: "empty", iso: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseISODuration(tt.iso); got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, expected %d", tt.iso, got, tt.want)
			}
		})
	}
}
