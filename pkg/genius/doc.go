// Package genius provides a client library for Genius song lyrics and
// metadata.
//
// # Overview
//
// This package wraps the token-authenticated Genius API, the
// unauthenticated public API used by the Genius website, and the song pages
// themselves, from which lyrics are scraped. On top of those it resolves
// fuzzy searches to a single song or artist and walks an artist's catalog.
//
// # Installation
//
//	go get github.com/jfmyers9/lyricsgenius/pkg/genius
//
// # Quick Start
//
//	import "github.com/jfmyers9/lyricsgenius/pkg/genius"
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: "your-access-token", // optional
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	song, err := client.SearchSong(ctx, genius.SongQuery{
//	    Title:  "To You",
//	    Artist: "Andy Shauf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if song != nil {
//	    fmt.Println(song.Lyrics)
//	}
//
// A nil result with a nil error means nothing suitable was found. That is
// not an error: searches commonly miss, and callers usually move on.
//
// # Artists
//
//	artist, err := client.SearchArtist(ctx, genius.ArtistQuery{
//	    Name:     "Andy Shauf",
//	    MaxSongs: 3,
//	    Sort:     "title",
//	})
//
//	// Look up one more song later
//	song, err := client.SearchSong(ctx, genius.SongQuery{Title: "Begin Again", Artist: artist.Name})
//	artist.AddSong(song, false)
//
//	path, err := artist.SaveLyrics("", genius.SaveOptions{Overwrite: true})
//
// # Backends
//
// Song and artist lookups go to the authenticated API when an access token
// is configured and to the public API otherwise. Searches used to resolve a
// song or artist always use the public multi search. Raw endpoints are
// available through Client.API and Client.Public:
//
//	resp, err := client.Public().Search(ctx, "Begin Again", genius.SearchOptions{Type: "song"})
//	refs, err := client.API().Referents(ctx, genius.ReferentsOptions{SongID: 378195})
//
// # Filtering
//
// By default results that are not songs (tracklists, liner notes, ...) are
// rejected. A result is a song when its lyrics_state is "complete" and its
// title matches none of the excluded terms:
//
//	client, err := genius.NewClient(genius.Config{
//	    ExcludedTerms: []string{`(remix|live)`},
//	})
//
// # Error Handling
//
// Failed requests are reported as *Error:
//
//	_, err := client.API().Song(ctx, 1, "")
//	var geniusErr *genius.Error
//	if errors.As(err, &geniusErr) && geniusErr.NotFound() {
//	    // no such song
//	}
//
// Requests that time out or fail with a 5xx status are retried
// Config.Retries times, waiting Config.SleepTime between attempts.
//
// # Genius API Documentation
//
// For more information about the Genius API:
// https://docs.genius.com
package genius
