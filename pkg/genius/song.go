package genius

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Song is a song's metadata together with its lyrics.
//
// Songs are built by the client's search and lookup methods and are not
// modified afterwards.
type Song struct {
	ID              int64
	Title           string
	FullTitle       string
	Artist          string // Primary artist name
	ArtistID        int64  // Primary artist ID
	FeaturedArtists   []string
	FeaturedArtistIDs []int64
	Album           string
	ReleaseDate     string
	URL             string
	Path            string
	LyricsState     string
	Lyrics          string

	// Extra holds every metadata field returned by the API, including the
	// ones not mapped above. Its contents depend on the backend.
	Extra map[string]interface{}
}

func newSong(info *SongInfo, lyrics string) *Song {
	s := &Song{
		ID:          info.ID,
		Title:       info.Title,
		FullTitle:   info.FullTitle,
		Artist:      info.PrimaryArtist.Name,
		ArtistID:    info.PrimaryArtist.ID,
		ReleaseDate: info.ReleaseDate,
		URL:         info.URL,
		Path:        info.Path,
		LyricsState: info.LyricsState,
		Lyrics:      lyrics,
		Extra:       info.Extra,
	}
	for _, a := range info.FeaturedArtists {
		s.FeaturedArtists = append(s.FeaturedArtists, a.Name)
		s.FeaturedArtistIDs = append(s.FeaturedArtistIDs, a.ID)
	}
	if info.Album != nil {
		s.Album = info.Album.Name
	}
	return s
}

// ToMap returns the song as a map: all API fields plus the lyrics.
func (s *Song) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(s.Extra)+8)
	for k, v := range s.Extra {
		m[k] = v
	}
	m["id"] = s.ID
	m["title"] = s.Title
	m["full_title"] = s.FullTitle
	m["artist"] = s.Artist
	m["album"] = s.Album
	m["release_date"] = s.ReleaseDate
	m["url"] = s.URL
	m["path"] = s.Path
	m["lyrics_state"] = s.LyricsState
	m["lyrics"] = s.Lyrics
	if len(s.FeaturedArtists) > 0 {
		m["featured_artist_names"] = s.FeaturedArtists
	}
	return m
}

// MarshalJSON encodes the song as ToMap does.
func (s *Song) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// ToJSON returns the song as indented JSON.
func (s *Song) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s.ToMap(), "", "  ")
}

// ToText returns the lyrics as plain text.
func (s *Song) ToText() string {
	return s.Lyrics
}

// String returns "Title by Artist".
func (s *Song) String() string {
	return s.Title + " by " + s.Artist
}

// DefaultFilename returns the filename SaveLyrics uses when none is given.
func (s *Song) DefaultFilename() string {
	return "Lyrics_" + sanitizeFilename(s.Artist) + "_" + sanitizeFilename(s.Title)
}

// SaveLyrics writes the song to filename and returns the path written.
//
// A ".txt" extension writes the lyrics as text; anything else writes JSON
// (".json" is appended when the name has no extension). An empty filename
// uses DefaultFilename.
func (s *Song) SaveLyrics(filename string, opts SaveOptions) (string, error) {
	if filename == "" {
		filename = s.DefaultFilename()
	}
	if filepath.Ext(filename) == "" {
		filename += ".json"
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		data = []byte(s.ToText() + "\n")
	} else {
		var err error
		data, err = s.ToJSON()
		if err != nil {
			return "", err
		}
	}

	if err := writeFile(filename, data, opts); err != nil {
		return "", err
	}
	return filename, nil
}

// sanitizeFilename strips characters that are awkward in file names.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|', '\'':
			return -1
		}
		return r
	}, s)
}
