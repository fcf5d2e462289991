package genius

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a failed Genius request.
//
// The Error type carries the HTTP status code and the message reported by
// Genius (meta.message or error_description). It implements error, and
// provides additional methods for retry logic.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // Error message from Genius
	Path       string // Request path, relative to the base URL
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("genius: %s: status %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("genius: %s: status %d: %s", e.Path, e.StatusCode, e.Message)
}

// Is checks if the target error is a Genius error with the same status code.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Temporary returns true if the error is temporary and the request
// should be retried. Server errors (5xx) are temporary.
func (e *Error) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// NotFound reports whether Genius answered 404.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Predefined errors for common cases.
var (
	// ErrNoAccessToken is returned when an authenticated API operation is
	// requested but no access token has been configured.
	ErrNoAccessToken = errors.New("genius: access token required")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("genius: invalid configuration")

	// ErrMissingSongQuery is returned by SearchSong when neither a title nor
	// a song ID is given.
	ErrMissingSongQuery = errors.New("genius: either a title or a song ID is required")

	// ErrMissingArtistQuery is returned by SearchArtist when neither a name
	// nor an artist ID is given.
	ErrMissingArtistQuery = errors.New("genius: either an artist name or an artist ID is required")

	// ErrLyricsNotFound is returned by the scraper when the page has no
	// recognizable lyrics container or could not be found.
	ErrLyricsNotFound = errors.New("genius: lyrics not found")

	// ErrNotOverwritten is returned when an existing file was kept because
	// overwriting was neither forced nor confirmed.
	ErrNotOverwritten = errors.New("genius: file exists and was not overwritten")
)
