package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Service provides the Genius endpoints of one backend.
//
// The authenticated API and the public API expose the same resources with
// slightly different response shapes; a Service hides those differences so
// callers only choose the backend.
type Service struct {
	client  *Client
	backend Backend
}

// Backend returns the backend this service targets.
func (s *Service) Backend() Backend {
	return s.backend
}

// ArtistSongsOptions controls artist catalog paging.
type ArtistSongsOptions struct {
	PerPage int    // Optional: results per page (Genius caps this at 50)
	Page    int    // Optional: 1-based page number
	Sort    string // Optional: "title", "popularity" or "release_date"
}

// SearchOptions controls a search request.
type SearchOptions struct {
	Type    string // Optional: public API section type ("song", "artist", ...); empty means multi
	PerPage int    // Optional: results per page
	Page    int    // Optional: 1-based page number
}

// ReferentsOptions selects referents by song or web page.
type ReferentsOptions struct {
	SongID      int64  // Optional: referents attached to this song
	WebPageID   int64  // Optional: referents attached to this web page
	CreatedByID int64  // Optional: only referents created by this user
	PerPage     int    // Optional: results per page
	Page        int    // Optional: 1-based page number
	TextFormat  string // Optional: overrides the client response format
}

// Song gets data for a specific song.
//
// Example:
//
//	song, err := client.API().Song(ctx, 378195, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(song.FullTitle)
func (s *Service) Song(ctx context.Context, id int64, textFormat string) (*SongInfo, error) {
	params, err := s.textFormatParams(textFormat)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Song *SongInfo `json:"song"`
	}
	if err := s.client.getJSON(ctx, s.backend, "songs/"+strconv.FormatInt(id, 10), params, &resp); err != nil {
		return nil, err
	}
	if resp.Song == nil {
		return nil, fmt.Errorf("genius: song %d: empty response", id)
	}
	return resp.Song, nil
}

// Artist gets data for a specific artist.
func (s *Service) Artist(ctx context.Context, id int64, textFormat string) (*ArtistInfo, error) {
	params, err := s.textFormatParams(textFormat)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Artist *ArtistInfo `json:"artist"`
	}
	if err := s.client.getJSON(ctx, s.backend, "artists/"+strconv.FormatInt(id, 10), params, &resp); err != nil {
		return nil, err
	}
	if resp.Artist == nil {
		return nil, fmt.Errorf("genius: artist %d: empty response", id)
	}
	return resp.Artist, nil
}

// ArtistSongs gets one page of an artist's songs.
//
// Example:
//
//	page := 1
//	for {
//	    resp, err := client.API().ArtistSongs(ctx, 16775, genius.ArtistSongsOptions{Page: page, PerPage: 50})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // use resp.Songs
//	    if resp.NextPage == nil {
//	        break
//	    }
//	    page = *resp.NextPage
//	}
func (s *Service) ArtistSongs(ctx context.Context, id int64, opts ArtistSongsOptions) (*SongsPage, error) {
	switch opts.Sort {
	case "", "title", "popularity", "release_date":
	default:
		return nil, fmt.Errorf("genius: unknown sort %q", opts.Sort)
	}

	params := url.Values{}
	params.Set("sort", opts.Sort)
	setInt(params, "per_page", int64(opts.PerPage))
	setInt(params, "page", int64(opts.Page))

	var page SongsPage
	if err := s.client.getJSON(ctx, s.backend, "artists/"+strconv.FormatInt(id, 10)+"/songs", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search searches Genius and returns the hits grouped into sections.
//
// On the public backend an empty (or "multi") Type searches all sections,
// any other Type searches only that section. The authenticated backend only
// searches songs, and its flat hit list is returned as one "song" section.
func (s *Service) Search(ctx context.Context, term string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", term)
	setInt(params, "per_page", int64(opts.PerPage))
	setInt(params, "page", int64(opts.Page))

	if s.backend == BackendAPI {
		if opts.Type != "" && opts.Type != "song" {
			return nil, fmt.Errorf("genius: the API backend cannot search %q", opts.Type)
		}
		var resp struct {
			Hits []Hit `json:"hits"`
		}
		if err := s.client.getJSON(ctx, s.backend, "search", params, &resp); err != nil {
			return nil, err
		}
		return &SearchResponse{Sections: []Section{{Type: "song", Hits: resp.Hits}}}, nil
	}

	path := "search/multi"
	if opts.Type != "" && opts.Type != "multi" {
		path = "search/" + url.PathEscape(opts.Type)
	}

	var resp SearchResponse
	if err := s.client.getJSON(ctx, s.backend, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchSongs is a shorthand for a song-only search.
func (s *Service) SearchSongs(ctx context.Context, term string, perPage, page int) (*SearchResponse, error) {
	return s.Search(ctx, term, SearchOptions{Type: "song", PerPage: perPage, Page: page})
}

// Referents gets the referents (annotated fragments) of a song or web page.
//
// At most one of SongID and WebPageID may be set.
func (s *Service) Referents(ctx context.Context, opts ReferentsOptions) ([]Referent, error) {
	if opts.SongID != 0 && opts.WebPageID != 0 {
		return nil, fmt.Errorf("genius: pass only one of song ID and web page ID")
	}

	params, err := s.textFormatParams(opts.TextFormat)
	if err != nil {
		return nil, err
	}
	setInt(params, "song_id", opts.SongID)
	setInt(params, "web_page_id", opts.WebPageID)
	setInt(params, "created_by_id", opts.CreatedByID)
	setInt(params, "per_page", int64(opts.PerPage))
	setInt(params, "page", int64(opts.Page))

	var resp struct {
		Referents []Referent `json:"referents"`
	}
	if err := s.client.getJSON(ctx, s.backend, "referents", params, &resp); err != nil {
		return nil, err
	}
	return resp.Referents, nil
}

// Annotation gets a single annotation and the referent it belongs to.
func (s *Service) Annotation(ctx context.Context, id int64, textFormat string) (*Annotation, *Referent, error) {
	params, err := s.textFormatParams(textFormat)
	if err != nil {
		return nil, nil, err
	}

	var resp struct {
		Annotation *Annotation `json:"annotation"`
		Referent   *Referent   `json:"referent"`
	}
	if err := s.client.getJSON(ctx, s.backend, "annotations/"+strconv.FormatInt(id, 10), params, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Annotation == nil {
		return nil, nil, fmt.Errorf("genius: annotation %d: empty response", id)
	}
	return resp.Annotation, resp.Referent, nil
}

func (s *Service) textFormatParams(textFormat string) (url.Values, error) {
	if textFormat == "" {
		textFormat = s.client.responseFormat
	}
	if err := validateTextFormat(textFormat); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("text_format", textFormat)
	return params, nil
}

func setInt(params url.Values, key string, v int64) {
	if v > 0 {
		params.Set(key, strconv.FormatInt(v, 10))
	}
}
