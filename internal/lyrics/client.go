package lyrics

import (
	"context"
	"fmt"

	"github.com/jfmyers9/lyricsgenius/internal/config"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/rs/zerolog"
)

// Client wraps the Genius client with the application's configuration
type Client struct {
	client *genius.Client
}

// New creates a Genius client from the application configuration.
// Library diagnostics go to logger.
func New(cfg config.GeniusConfig, logger zerolog.Logger) (*Client, error) {
	client, err := genius.NewClient(genius.Config{
		AccessToken:          cfg.AccessToken,
		ResponseFormat:       cfg.ResponseFormat,
		Timeout:              cfg.Timeout,
		SleepTime:            cfg.SleepTime,
		Retries:              cfg.Retries,
		Verbose:              cfg.Verbose,
		RemoveSectionHeaders: cfg.RemoveSectionHeaders,
		IncludeNonSongs:      cfg.IncludeNonSongs,
		ExcludedTerms:        cfg.ExcludedTerms,
		ReplaceDefaultTerms:  cfg.ReplaceDefaultTerms,
		BaseURL:              cfg.BaseURL,
		PublicBaseURL:        cfg.PublicBaseURL,
		WebBaseURL:           cfg.WebBaseURL,
		Logger:               NewLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genius client: %w", err)
	}
	return &Client{client: client}, nil
}

// Genius returns the underlying Genius client
func (c *Client) Genius() *genius.Client {
	return c.client
}

// Song looks up a song by title and artist, or by ID when id is non-zero.
// Returns (nil, nil) when no song with lyrics was found.
func (c *Client) Song(ctx context.Context, title, artist string, id int64, fullInfo bool) (*genius.Song, error) {
	song, err := c.client.SearchSong(ctx, genius.SongQuery{
		Title:        title,
		Artist:       artist,
		SongID:       id,
		SkipFullInfo: !fullInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search song: %w", err)
	}
	return song, nil
}

// ArtistOptions controls how much of an artist's catalog is collected
type ArtistOptions struct {
	MaxSongs        int
	Sort            string
	PerPage         int
	FullInfo        bool
	IncludeFeatures bool
	AllowNameChange bool
}

// Artist looks up an artist and collects its songs.
// Returns (nil, nil) when no artist was found.
func (c *Client) Artist(ctx context.Context, name string, id int64, opts ArtistOptions) (*genius.Artist, error) {
	artist, err := c.client.SearchArtist(ctx, genius.ArtistQuery{
		Name:            name,
		ArtistID:        id,
		MaxSongs:        opts.MaxSongs,
		Sort:            opts.Sort,
		PerPage:         opts.PerPage,
		SkipFullInfo:    !opts.FullInfo,
		IncludeFeatures: opts.IncludeFeatures,
		AllowNameChange: opts.AllowNameChange,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search artist: %w", err)
	}
	return artist, nil
}

// VerifyToken checks that the configured access token is accepted by the
// authenticated API.
func (c *Client) VerifyToken(ctx context.Context) error {
	if !c.client.HasAccessToken() {
		return genius.ErrNoAccessToken
	}
	if _, err := c.client.API().SearchSongs(ctx, "Genius", 1, 1); err != nil {
		return fmt.Errorf("access token rejected: %w", err)
	}
	return nil
}

// IsAuthenticated checks if the client has an access token
func (c *Client) IsAuthenticated() bool {
	return c.client.HasAccessToken()
}
