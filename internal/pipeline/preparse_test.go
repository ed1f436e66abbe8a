package pipeline

import (
	"testing"
)

func TestExtractTitleLine(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantRest  string
	}{
		{
			name:      "lone first line becomes title",
			input:     "My Title\n\nBody text.",
			wantTitle: "My Title",
			wantRest:  "Body text.",
		},
		{
			name:      "leading hashes and spaces stripped",
			input:     "## My Title\n\nBody.",
			wantTitle: "My Title",
			wantRest:  "Body.",
		},
		{
			name:      "colon disqualifies the line",
			input:     "Title: something\n\nBody.",
			wantTitle: "",
			wantRest:  "Title: something\n\nBody.",
		},
		{
			name:      "non-empty second line leaves buffer untouched",
			input:     "First line.\nSecond line.\n\nBody.",
			wantTitle: "",
			wantRest:  "First line.\nSecond line.\n\nBody.",
		},
		{
			name:      "empty first line leaves buffer untouched",
			input:     "\nSecond.",
			wantTitle: "",
			wantRest:  "\nSecond.",
		},
		{
			name:      "single line document",
			input:     "Lone title",
			wantTitle: "Lone title",
			wantRest:  "",
		},
		{
			name:      "two line document",
			input:     "Lone title\n",
			wantTitle: "Lone title",
			wantRest:  "",
		},
		{
			name:      "CRLF line endings",
			input:     "My Title\r\n\r\nBody.",
			wantTitle: "My Title",
			wantRest:  "Body.",
		},
		{
			name:      "front matter fence is never a title",
			input:     "---\ntitle: Meta\n---\n\nBody.",
			wantTitle: "",
			wantRest:  "---\ntitle: Meta\n---\n\nBody.",
		},
		{
			name:      "empty input",
			input:     "",
			wantTitle: "",
			wantRest:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, rest := ExtractTitleLine([]byte(tt.input))
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("rest = %q, want %q", string(rest), tt.wantRest)
			}
		})
	}
}
