package genius

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// NoSongs as ArtistQuery.MaxSongs fetches the artist without any songs.
const NoSongs = -1

const (
	defaultArtistPerPage = 20
	maxArtistPerPage     = 50
	defaultArtistSort    = "popularity"
)

// SongQuery describes the song to look up.
type SongQuery struct {
	Title  string // Song title; required unless SongID is set
	Artist string // Optional: narrows the search
	SongID int64  // Optional: look the song up directly, skipping search

	// SkipFullInfo keeps the search hit's metadata instead of fetching the
	// complete song record. Saves one request per song.
	SkipFullInfo bool
}

// ArtistQuery describes the artist to look up and how much of the catalog
// to collect.
type ArtistQuery struct {
	Name     string // Artist name; required unless ArtistID is set
	ArtistID int64  // Optional: look the artist up directly, skipping search

	MaxSongs int    // Optional: stop after this many songs; 0 means all, NoSongs means none
	Sort     string // Optional: "title", "popularity" (default) or "release_date"
	PerPage  int    // Optional: catalog page size (default 20, at most 50)

	SkipFullInfo    bool // Optional: do not fetch the complete record of each song
	IncludeFeatures bool // Optional: keep songs where the artist is only featured in Songs
	AllowNameChange bool // Optional: use the name Genius reports instead of Name
}

// SearchSong finds a song and its lyrics.
//
// With SongID the song is fetched directly. Otherwise "<title> <artist>" is
// searched on the public API and the best song hit is picked by ResolveHit.
//
// Returns (nil, nil) when nothing suitable was found: no hits, a result that
// is not a song, or a song without lyrics. Returns ErrMissingSongQuery when
// neither Title nor SongID is given.
//
// Example:
//
//	song, err := client.SearchSong(ctx, genius.SongQuery{Title: "To You", Artist: "Andy Shauf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if song == nil {
//	    fmt.Println("not found")
//	}
func (c *Client) SearchSong(ctx context.Context, q SongQuery) (*Song, error) {
	if strings.TrimSpace(q.Title) == "" && q.SongID == 0 {
		return nil, ErrMissingSongQuery
	}

	var info *SongInfo
	if q.SongID != 0 {
		c.logInfof("Searching for song ID %d...", q.SongID)
		s, err := c.metadata().Song(ctx, q.SongID, "")
		if err != nil {
			return nil, fmt.Errorf("failed to get song %d: %w", q.SongID, err)
		}
		info = s
	} else {
		term := strings.TrimSpace(q.Title + " " + q.Artist)
		if q.Artist != "" {
			c.logInfof("Searching for %q by %s...", q.Title, q.Artist)
		} else {
			c.logInfof("Searching for %q...", q.Title)
		}

		resp, err := c.public.Search(ctx, term, SearchOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to search for %q: %w", term, err)
		}

		hit := ResolveHit(resp, q.Title, "song", "title", c.resolverFilter())
		if hit == nil {
			c.logInfof("No results found for: %q", term)
			return nil, nil
		}

		info, err = hit.Result.Song()
		if err != nil {
			return nil, fmt.Errorf("failed to decode search hit: %w", err)
		}

		if !q.SkipFullInfo {
			full, err := c.metadata().Song(ctx, info.ID, "")
			if err != nil {
				return nil, fmt.Errorf("failed to get song %d: %w", info.ID, err)
			}
			info.Merge(full)
		}
	}

	if c.skipNonSongs && !c.filter.IsLyrics(info.LyricsState, info.Title) {
		c.logInfof("Specified song does not contain lyrics. Rejecting.")
		return nil, nil
	}

	song, err := c.songWithLyrics(ctx, info)
	if err != nil {
		return nil, err
	}
	if song == nil {
		c.logInfof("Specified song does not have valid lyrics. Rejecting.")
		return nil, nil
	}

	c.logInfof("Done.")
	return song, nil
}

// SearchArtist finds an artist and collects its songs.
//
// Pages of the artist's catalog are requested in order. Songs that fail the
// lyrics check, have no title or have no lyrics are skipped; the rest are
// added with Artist.AddSong. Collection stops once MaxSongs songs are held
// or the catalog ends.
//
// Returns (nil, nil) when the search finds no artist. Returns
// ErrMissingArtistQuery when neither Name nor ArtistID is given.
func (c *Client) SearchArtist(ctx context.Context, q ArtistQuery) (*Artist, error) {
	if strings.TrimSpace(q.Name) == "" && q.ArtistID == 0 {
		return nil, ErrMissingArtistQuery
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultArtistPerPage
	}
	if perPage > maxArtistPerPage {
		perPage = maxArtistPerPage
	}
	sort := q.Sort
	if sort == "" {
		sort = defaultArtistSort
	}

	artistID := q.ArtistID
	if artistID == 0 {
		c.logInfof("Searching for songs by %s...", q.Name)

		resp, err := c.public.Search(ctx, q.Name, SearchOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to search for %q: %w", q.Name, err)
		}
		hit := ResolveHit(resp, q.Name, "artist", "name", nil)
		if hit == nil {
			c.logInfof("No results found for %q.", q.Name)
			return nil, nil
		}
		artistID = hit.Result.Int("id")
	}

	info, err := c.metadata().Artist(ctx, artistID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %d: %w", artistID, err)
	}
	artist := NewArtist(info)

	if q.Name != "" && info.Name != q.Name {
		if q.AllowNameChange {
			c.logInfof("Changing artist name to '%s'", info.Name)
		} else {
			artist.Name = q.Name
		}
	}

	if q.MaxSongs == NoSongs {
		return artist, nil
	}

	page := 1
	for {
		resp, err := c.metadata().ArtistSongs(ctx, artistID, ArtistSongsOptions{
			PerPage: perPage,
			Page:    page,
			Sort:    sort,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get songs of artist %d (page %d): %w", artistID, page, err)
		}

		for i := range resp.Songs {
			info := &resp.Songs[i]
			if strings.TrimSpace(info.Title) == "" ||
				(c.skipNonSongs && !c.filter.IsLyrics(info.LyricsState, info.Title)) {
				c.logInfof("%q is not valid. Skipping.", info.Title)
				continue
			}
			if artist.Has(info.ID) {
				continue
			}

			if !q.SkipFullInfo {
				full, err := c.metadata().Song(ctx, info.ID, "")
				if err != nil {
					return nil, fmt.Errorf("failed to get song %d: %w", info.ID, err)
				}
				info.Merge(full)
			}

			song, err := c.songWithLyrics(ctx, info)
			if err != nil {
				return nil, err
			}
			if song == nil {
				c.logInfof("%q has no lyrics. Skipping.", info.Title)
				continue
			}

			switch artist.AddSong(song, q.IncludeFeatures) {
			case SongAdded:
				c.logInfof("Song %d: %q", artist.NumSongs, song.Title)
			case SongFeatured:
				c.logDebugf("genius: %q kept as a feature", song.Title)
			}

			if q.MaxSongs > 0 && artist.NumSongs >= q.MaxSongs {
				c.logInfof("Reached user-specified song limit (%d).", q.MaxSongs)
				return artist, nil
			}
		}

		if resp.NextPage == nil || *resp.NextPage <= page {
			break
		}
		page = *resp.NextPage
	}

	c.logInfof("Done. Found %d songs.", artist.NumSongs)
	return artist, nil
}

// songWithLyrics scrapes the lyrics for info and builds a Song.
// Returns nil when there are no lyrics to keep.
func (c *Client) songWithLyrics(ctx context.Context, info *SongInfo) (*Song, error) {
	if info.LyricsState != LyricsStateComplete && c.skipNonSongs {
		return nil, nil
	}

	ref := info.Path
	if ref == "" {
		ref = info.URL
	}
	if ref == "" {
		return nil, nil
	}

	lyrics, err := c.Lyrics(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrLyricsNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if lyrics == "" {
		return nil, nil
	}
	return newSong(info, lyrics), nil
}

// resolverFilter returns the filter ResolveHit should fall back on, or nil
// when non-songs are kept.
func (c *Client) resolverFilter() *Filter {
	if c.skipNonSongs {
		return c.filter
	}
	return nil
}
