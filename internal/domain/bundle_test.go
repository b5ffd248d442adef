package domain

import (
	"strings"
	"testing"
)

func sampleBundle() AnalysisBundle {
	return AnalysisBundle{
		Metadata: VideoMetadata{
			VideoID: "abc123def45",
			Title:   "AI Tools Weekly",
		},
		Summary: VideoSummary{
			Summary:    "Three new tools reviewed.",
			Highlights: []string{"tools", "pricing"},
			Category:   "Productivity",
		},
		Timestamps: []TimestampEntry{
			{Seconds: 0, Title: "Intro"},
			{Seconds: 120, Title: "First tool"},
		},
		Tools: []DetectedTool{
			{Name: "Cursor", PricingType: "paid"},
		},
	}
}

func TestApplyFieldEdit(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value interface{}
		check func(t *testing.T, b *AnalysisBundle)
	}{
		{
			name:  "top level summary field",
			path:  "summary.summary",
			value: "Edited summary.",
			check: func(t *testing.T, b *AnalysisBundle) {
				if b.Summary.Summary != "Edited summary." {
					t.Errorf("summary = %q", b.Summary.Summary)
				}
			},
		},
		{
			name:  "list element field",
			path:  "timestamps.1.title",
			value: "Renamed",
			check: func(t *testing.T, b *AnalysisBundle) {
				if b.Timestamps[1].Title != "Renamed" {
					t.Errorf("title = %q", b.Timestamps[1].Title)
				}
				if b.Timestamps[0].Title != "Intro" {
					t.Errorf("sibling touched: %q", b.Timestamps[0].Title)
				}
			},
		},
		{
			name:  "numeric field",
			path:  "timestamps.0.seconds",
			value: 30,
			check: func(t *testing.T, b *AnalysisBundle) {
				if b.Timestamps[0].Seconds != 30 {
					t.Errorf("seconds = %d", b.Timestamps[0].Seconds)
				}
			},
		},
		{
			name:  "whole list replacement",
			path:  "summary.highlights",
			value: []string{"only one"},
			check: func(t *testing.T, b *AnalysisBundle) {
				if len(b.Summary.Highlights) != 1 || b.Summary.Highlights[0] != "only one" {
					t.Errorf("highlights = %v", b.Summary.Highlights)
				}
			},
		},
		{
			name:  "tool field",
			path:  "tools.0.name",
			value: "Cursor IDE",
			check: func(t *testing.T, b *AnalysisBundle) {
				if b.Tools[0].Name != "Cursor IDE" {
					t.Errorf("name = %q", b.Tools[0].Name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBundle()
			if err := b.ApplyFieldEdit(tt.path, tt.value); err != nil {
				t.Fatalf("ApplyFieldEdit(%q) error: %v", tt.path, err)
			}
			tt.check(t, &b)
		})
	}
}

func TestApplyFieldEditErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		value interface{}
		want string
	}{
		{"empty path", "", "x", "empty edit path"},
		{"unknown field", "summary.rating", 5, "unknown field"},
		{"index out of range", "timestamps.9.title", "x", "out of range"},
		{"non-numeric index", "timestamps.first.title", "x", "list index expected"},
		{"descend into scalar", "summary.summary.deeper", "x", "cannot descend"},
		{"type mismatch", "timestamps.0.seconds", "not a number", "invalid bundle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBundle()
			err := b.ApplyFieldEdit(tt.path, tt.value)
			if err == nil {
				t.Fatalf("ApplyFieldEdit(%q) expected error", tt.path)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.want)
			}
			// a failed edit leaves the bundle untouched
			if b.Summary.Summary != "Three new tools reviewed." {
				t.Errorf("bundle mutated on failed edit")
			}
		})
	}
}
