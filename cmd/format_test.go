package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 columns, ... is 3, need 1 space
		},
		{
			name:     "accented title",
			input:    "Beyoncé",
			width:    9,
			expected: "Beyoncé  ",
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			// Verify the result has the expected display width (if width > 0)
			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func TestFormatSong(t *testing.T) {
	song := &genius.Song{
		Title:     "To You",
		FullTitle: "To You by Andy Shauf",
		Artist:    "Andy Shauf",
		Album:     "The Neon Skyline",
		Lyrics:    "Line one\nLine two",
	}

	tests := []struct {
		name     string
		template string
		expected string
		wantErr  bool
	}{
		{
			name:     "default format",
			template: `{{.FullTitle}}\n\n{{.Lyrics}}`,
			expected: "To You by Andy Shauf\n\nLine one\nLine two",
		},
		{
			name:     "custom fields",
			template: "{{.Artist}} - {{.Title}} ({{.Album}})",
			expected: "Andy Shauf - To You (The Neon Skyline)",
		},
		{
			name:     "invalid template",
			template: "{{.Title",
			wantErr:  true,
		},
		{
			name:     "unknown field",
			template: "{{.Nope}}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatSong(song, tt.template)
			if (err != nil) != tt.wantErr {
				t.Fatalf("formatSong() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && result != tt.expected {
				t.Errorf("formatSong() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestWriteSongTable(t *testing.T) {
	songs := []*genius.Song{
		{Title: "To You", Album: "The Neon Skyline", ReleaseDate: "2020-01-24"},
		{Title: "日本語の歌", Album: ""},
	}

	var buf bytes.Buffer
	writeSongTable(&buf, songs)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#   ") {
		t.Errorf("unexpected header %q", lines[0])
	}

	// The album column starts at the same display column in every row
	albumCol := numberWidth + 2 + titleWidth + 2
	for _, line := range lines[1:] {
		prefix := runewidth.Truncate(line, albumCol, "")
		if runewidth.StringWidth(prefix) != albumCol {
			t.Errorf("row %q is misaligned", line)
		}
	}
	if !strings.Contains(lines[1], "2020-01-24") {
		t.Errorf("expected release date in row, got %q", lines[1])
	}
}
