package genius

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
)

// AddResult reports what Artist.AddSong did with a song.
type AddResult int

const (
	SongAdded     AddResult = iota // Appended to Songs
	SongFeatured                   // Appended to Features
	SongDuplicate                  // Already held, not added
)

// String returns a human-readable representation of the AddResult.
func (r AddResult) String() string {
	switch r {
	case SongAdded:
		return "added"
	case SongFeatured:
		return "featured"
	case SongDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Artist is an artist together with the songs collected for it.
//
// Songs holds the artist's own songs in the order they were added. Songs
// where the artist is only a guest go to Features unless features are
// included. No song ID appears twice across Songs and Features.
type Artist struct {
	ID       int64
	Name     string
	URL      string
	ImageURL string
	Songs    []*Song
	Features []*Song
	NumSongs int // len(Songs)

	Extra map[string]interface{}

	ids map[int64]bool
}

// NewArtist creates an empty Artist from API data.
func NewArtist(info *ArtistInfo) *Artist {
	return &Artist{
		ID:       info.ID,
		Name:     info.Name,
		URL:      info.URL,
		ImageURL: info.ImageURL,
		Extra:    info.Extra,
	}
}

// Has reports whether a song with this ID is already held.
func (a *Artist) Has(songID int64) bool {
	if a.ids == nil {
		a.reindex()
	}
	return a.ids[songID]
}

// AddSong adds song unless a song with the same ID is already held.
//
// Songs whose primary artist is this artist go to Songs. Songs that only
// feature this artist go to Songs when includeFeatures is set. Everything
// else, including songs the artist only wrote or produced, goes to Features.
func (a *Artist) AddSong(song *Song, includeFeatures bool) AddResult {
	if a.Has(song.ID) {
		return SongDuplicate
	}
	a.ids[song.ID] = true

	if a.isPrimary(song) || (includeFeatures && a.isFeatured(song)) {
		a.Songs = append(a.Songs, song)
		a.NumSongs = len(a.Songs)
		return SongAdded
	}

	a.Features = append(a.Features, song)
	return SongFeatured
}

// Song returns the held song whose title matches, or nil.
// Titles are compared after CleanString.
func (a *Artist) Song(title string) *Song {
	want := CleanString(title)
	for _, list := range [][]*Song{a.Songs, a.Features} {
		for _, s := range list {
			if CleanString(s.Title) == want {
				return s
			}
		}
	}
	return nil
}

// MergeFeatures moves the feature songs into Songs.
func (a *Artist) MergeFeatures() {
	a.Songs = append(a.Songs, a.Features...)
	a.Features = nil
	a.NumSongs = len(a.Songs)
}

func (a *Artist) isPrimary(song *Song) bool {
	if a.ID != 0 && song.ArtistID != 0 {
		return song.ArtistID == a.ID
	}
	return CleanString(song.Artist) == CleanString(a.Name)
}

func (a *Artist) isFeatured(song *Song) bool {
	if a.ID != 0 {
		for _, id := range song.FeaturedArtistIDs {
			if id == a.ID {
				return true
			}
		}
	}
	name := CleanString(a.Name)
	for _, n := range song.FeaturedArtists {
		if CleanString(n) == name {
			return true
		}
	}
	return false
}

func (a *Artist) reindex() {
	a.ids = make(map[int64]bool, len(a.Songs)+len(a.Features))
	for _, s := range a.Songs {
		a.ids[s.ID] = true
	}
	for _, s := range a.Features {
		a.ids[s.ID] = true
	}
}

// ToMap returns the artist and its songs as a map.
func (a *Artist) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(a.Extra)+6)
	for k, v := range a.Extra {
		m[k] = v
	}
	m["id"] = a.ID
	m["name"] = a.Name
	m["url"] = a.URL
	m["image_url"] = a.ImageURL

	songs := make([]map[string]interface{}, len(a.Songs))
	for i, s := range a.Songs {
		songs[i] = s.ToMap()
	}
	m["songs"] = songs

	features := make([]map[string]interface{}, len(a.Features))
	for i, s := range a.Features {
		features[i] = s.ToMap()
	}
	m["features"] = features
	return m
}

// MarshalJSON encodes the artist as ToMap does.
func (a *Artist) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToMap())
}

// ToJSON returns the artist as indented JSON.
func (a *Artist) ToJSON() ([]byte, error) {
	return json.MarshalIndent(a.ToMap(), "", "  ")
}

// String returns the artist name and song count.
func (a *Artist) String() string {
	if a.NumSongs == 1 {
		return a.Name + ", 1 song"
	}
	return a.Name + ", " + strconv.Itoa(a.NumSongs) + " songs"
}

// DefaultFilename returns the filename SaveLyrics uses when none is given.
func (a *Artist) DefaultFilename() string {
	return "Lyrics_" + sanitizeFilename(a.Name)
}

// SaveLyrics writes the artist and its songs to filename as JSON, or the
// lyrics of every song as text when the name ends in ".txt". Returns the
// path written.
func (a *Artist) SaveLyrics(filename string, opts SaveOptions) (string, error) {
	if filename == "" {
		filename = a.DefaultFilename()
	}
	if filepath.Ext(filename) == "" {
		filename += ".json"
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		var b strings.Builder
		for i, s := range a.Songs {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString("[" + s.Title + "]\n")
			b.WriteString(s.Lyrics)
		}
		b.WriteString("\n")
		data = []byte(b.String())
	} else {
		var err error
		data, err = a.ToJSON()
		if err != nil {
			return "", err
		}
	}

	if err := writeFile(filename, data, opts); err != nil {
		return "", err
	}
	return filename, nil
}
