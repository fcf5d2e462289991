package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/mattn/go-runewidth"
)

// formatSong applies the template to the song data
func formatSong(song *genius.Song, templateStr string) (string, error) {
	// Config files and flags carry "\n" literally
	templateStr = strings.ReplaceAll(templateStr, `\n`, "\n")

	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, song); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// Column widths of the song table
const (
	numberWidth = 4
	titleWidth  = 40
	albumWidth  = 30
)

// writeSongTable prints one row per song, padded to fixed display widths
func writeSongTable(w io.Writer, songs []*genius.Song) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		padToWidth("#", numberWidth),
		padToWidth("TITLE", titleWidth),
		padToWidth("ALBUM", albumWidth),
		"RELEASED")
	for i, s := range songs {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			padToWidth(strconv.Itoa(i+1), numberWidth),
			padToWidth(s.Title, titleWidth),
			padToWidth(s.Album, albumWidth),
			s.ReleaseDate)
	}
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Truncate to (width - ellipsisWidth) and add ellipsis
		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can leave the result a column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
