package genius

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pkgerrors "github.com/pkg/errors"
)

// lyricsMatcher locates lyrics containers in one version of the song page
// markup.
type lyricsMatcher struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

var lyricsRootClass = regexp.MustCompile(`^lyrics$|Lyrics__Root`)

// lyricsMatchers are tried in order; the first one that matches wins.
// Newer markup comes first. Add new page versions here.
var lyricsMatchers = []lyricsMatcher{
	{
		name: "data-lyrics-container",
		find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(`[data-lyrics-container="true"]`)
		},
	},
	{
		name: "Lyrics__Container",
		find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(`div[class^="Lyrics__Container"], div[class*=" Lyrics__Container"]`)
		},
	},
	{
		name: "lyrics",
		find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
				for _, class := range strings.Fields(s.AttrOr("class", "")) {
					if lyricsRootClass.MatchString(class) {
						return true
					}
				}
				return false
			}).First()
		},
	},
}

var (
	sectionHeader = regexp.MustCompile(`(\[.*?\])*`)
	blankLines    = regexp.MustCompile(`\n{2,}`)
)

// Lyrics scrapes the lyrics of a song page.
//
// songURL may be a full URL ("https://genius.com/Andy-shauf-to-you-lyrics")
// or a path ("/Andy-shauf-to-you-lyrics"). Section headers are removed when
// the client was configured with RemoveSectionHeaders.
//
// Returns ErrLyricsNotFound if the page answers with any error status
// (after retries) or has no lyrics section; callers should treat that as
// "skip this result". Network and context errors are returned as is.
func (c *Client) Lyrics(ctx context.Context, songURL string) (string, error) {
	path := c.pagePath(songURL)

	page, err := c.getPage(ctx, path)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			c.logInfof("Song page unavailable (status %d): %s%s", apiErr.StatusCode, c.webURL, path)
			return "", fmt.Errorf("%w: %v", ErrLyricsNotFound, apiErr)
		}
		return "", err
	}

	lyrics, err := parseLyrics(page)
	if err != nil {
		if errors.Is(err, ErrLyricsNotFound) {
			c.logInfof("Couldn't find the lyrics section. Please report this if the song has lyrics.\nSong URL: %s%s", c.webURL, path)
		}
		return "", err
	}

	if c.removeSectionHeaders {
		lyrics = StripSectionHeaders(lyrics)
	}
	return lyrics, nil
}

// LyricsByID looks up the song's page path and scrapes its lyrics.
//
// This costs an extra request; prefer Lyrics when the URL is known.
func (c *Client) LyricsByID(ctx context.Context, songID int64) (string, error) {
	song, err := c.metadata().Song(ctx, songID, "")
	if err != nil {
		return "", err
	}
	return c.Lyrics(ctx, song.Path)
}

// pagePath turns a song URL or path into a path relative to the web base.
func (c *Client) pagePath(songURL string) string {
	path := strings.TrimPrefix(songURL, c.webURL)
	path = strings.TrimPrefix(path, DefaultWebBaseURL)
	return strings.TrimPrefix(path, "/")
}

// parseLyrics extracts the lyrics text from song page markup.
func parseLyrics(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", pkgerrors.Wrap(err, "parse song page")
	}

	for _, m := range lyricsMatchers {
		sel := m.find(doc)
		if sel.Length() == 0 {
			continue
		}

		sel.Find(`[data-exclude-from-selection="true"]`).Remove()
		sel.Find("br").ReplaceWithHtml("\n")

		parts := sel.Map(func(_ int, s *goquery.Selection) string {
			return s.Text()
		})
		text := strings.ReplaceAll(strings.Join(parts, "\n"), "\r\n", "\n")
		return strings.Trim(text, "\n"), nil
	}

	return "", ErrLyricsNotFound
}

// StripSectionHeaders removes bracketed section headers such as [Chorus]
// and collapses the blank lines they leave behind.
func StripSectionHeaders(lyrics string) string {
	lyrics = sectionHeader.ReplaceAllString(lyrics, "")
	lyrics = blankLines.ReplaceAllString(lyrics, "\n")
	return strings.Trim(lyrics, "\n")
}
