package analyzer

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fences",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "leading whitespace",
			input: "  \n```json\n{\"a\":1}\n```  ",
			want:  `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "clean object",
			input: `{"summary":"x"}`,
			want:  `{"summary":"x"}`,
		},
		{
			name:  "prose around object",
			input: `Here is the result: {"a":{"b":1}} hope that helps`,
			want:  `{"a":{"b":1}}`,
		},
		{
			name:    "no object",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"a":{"b":1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
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

func TestClampRunes(t *testing.T) {
	if got := clampRunes("short", 50); got != "short" {
		t.Errorf("short input should pass through, got %q", got)
	}
	if got := clampRunes("abcdef", 3); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	// multibyte safety
	if got := clampRunes("日本語テキスト", 3); got != "日本語" {
		t.Errorf("expected rune-safe clamp, got %q", got)
	}
}
