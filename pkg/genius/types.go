package genius

import (
	"encoding/json"
	"strconv"
)

// ArtistRef is the compact artist object embedded in songs and hits.
type ArtistRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AlbumRef is the compact album object embedded in songs.
type AlbumRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FullTitle string `json:"full_title"`
	URL       string `json:"url"`
}

// SongInfo is a song as returned by either API.
//
// The two backends return different field sets for the same song. Common
// fields are decoded into the struct; Extra holds every field of the
// response, so API-version-dependent data is never lost.
type SongInfo struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	FullTitle       string      `json:"full_title"`
	URL             string      `json:"url"`
	Path            string      `json:"path"`
	LyricsState     string      `json:"lyrics_state"`
	ReleaseDate     string      `json:"release_date"`
	PrimaryArtist   ArtistRef   `json:"primary_artist"`
	FeaturedArtists []ArtistRef `json:"featured_artists"`
	Album           *AlbumRef   `json:"album"`

	Extra map[string]interface{} `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the full object in Extra.
func (s *SongInfo) UnmarshalJSON(data []byte) error {
	type alias SongInfo
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &a.Extra); err != nil {
		return err
	}
	*s = SongInfo(a)
	return nil
}

// Merge overlays other onto s. Non-empty fields of other win and Extra
// becomes the union of both field sets.
func (s *SongInfo) Merge(other *SongInfo) {
	if other == nil {
		return
	}
	if other.ID != 0 {
		s.ID = other.ID
	}
	if other.Title != "" {
		s.Title = other.Title
	}
	if other.FullTitle != "" {
		s.FullTitle = other.FullTitle
	}
	if other.URL != "" {
		s.URL = other.URL
	}
	if other.Path != "" {
		s.Path = other.Path
	}
	if other.LyricsState != "" {
		s.LyricsState = other.LyricsState
	}
	if other.ReleaseDate != "" {
		s.ReleaseDate = other.ReleaseDate
	}
	if other.PrimaryArtist.Name != "" {
		s.PrimaryArtist = other.PrimaryArtist
	}
	if len(other.FeaturedArtists) > 0 {
		s.FeaturedArtists = other.FeaturedArtists
	}
	if other.Album != nil {
		s.Album = other.Album
	}
	if s.Extra == nil {
		s.Extra = make(map[string]interface{}, len(other.Extra))
	}
	for k, v := range other.Extra {
		s.Extra[k] = v
	}
}

// ArtistInfo is an artist as returned by either API.
type ArtistInfo struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	ImageURL   string `json:"image_url"`
	IsVerified bool   `json:"is_verified"`

	Extra map[string]interface{} `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the full object in Extra.
func (a *ArtistInfo) UnmarshalJSON(data []byte) error {
	type alias ArtistInfo
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &v.Extra); err != nil {
		return err
	}
	*a = ArtistInfo(v)
	return nil
}

// SongsPage is one page of an artist's songs.
type SongsPage struct {
	Songs    []SongInfo `json:"songs"`
	NextPage *int       `json:"next_page"` // nil on the last page
}

// SearchResponse is a search result grouped into sections.
//
// The public API returns sections (top_hit, song, lyric, artist, album, ...).
// The authenticated API returns a flat list of song hits, which is
// normalized into a single "song" section.
type SearchResponse struct {
	Sections []Section `json:"sections"`
}

// Section is one group of hits in a search response.
type Section struct {
	Type string `json:"type"`
	Hits []Hit  `json:"hits"`
}

// Hit is a single search result tagged with its entity type.
type Hit struct {
	Index  string `json:"index"`
	Type   string `json:"type"`
	Result Result `json:"result"`
}

// Result is the payload of a search hit. Its shape depends on the hit type.
type Result map[string]interface{}

// String returns the string value of key, or "" if absent.
func (r Result) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value of key, or 0 if absent.
func (r Result) Int(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Song decodes the result as a song.
func (r Result) Song() (*SongInfo, error) {
	var s SongInfo
	if err := r.decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Artist decodes the result as an artist.
func (r Result) Artist() (*ArtistInfo, error) {
	var a ArtistInfo
	if err := r.decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r Result) decode(v interface{}) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Referent is an annotated fragment of a song or web page.
type Referent struct {
	ID          int64        `json:"id"`
	Fragment    string       `json:"fragment"`
	SongID      int64        `json:"song_id"`
	Path        string       `json:"path"`
	URL         string       `json:"url"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is a Genius annotation. Body is keyed by text format.
type Annotation struct {
	ID         int64                  `json:"id"`
	URL        string                 `json:"url"`
	State      string                 `json:"state"`
	VotesTotal int                    `json:"votes_total"`
	Body       map[string]interface{} `json:"body"`
}

// Text returns the annotation body in the given text format, or "".
func (a *Annotation) Text(format string) string {
	if v, ok := a.Body[format].(string); ok {
		return v
	}
	return ""
}
