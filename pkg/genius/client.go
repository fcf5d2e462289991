package genius

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config holds client configuration.
type Config struct {
	AccessToken          string        // Optional: Genius API access token (public API is used without one)
	ResponseFormat       string        // Optional: text format for API responses (defaults to "plain")
	Timeout              time.Duration // Optional: per-request timeout (defaults to 5s)
	SleepTime            time.Duration // Optional: delay after each request (defaults to 200ms, negative disables)
	Retries              int           // Optional: extra attempts on timeouts and 5xx responses
	Verbose              bool          // Optional: emit progress messages through Logger.Infof
	RemoveSectionHeaders bool          // Optional: strip [Chorus], [Verse] etc. from lyrics
	IncludeNonSongs      bool          // Optional: keep results that fail the lyrics heuristic
	ExcludedTerms        []string      // Optional: extra regular expressions flagging non-songs
	ReplaceDefaultTerms  bool          // Optional: use ExcludedTerms instead of the defaults
	HTTPClient           *http.Client  // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL              string        // Optional: API base URL (used for testing)
	PublicBaseURL        string        // Optional: public API base URL (used for testing)
	WebBaseURL           string        // Optional: song page base URL (used for testing)
	Logger               Logger        // Optional: Logger interface for debug and progress logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})

	// Infof logs a progress message. Only called when Config.Verbose is set.
	Infof(format string, args ...interface{})
}

// Client is the main entry point for Genius operations.
type Client struct {
	accessToken          string
	responseFormat       string
	timeout              time.Duration
	sleepTime            time.Duration
	retries              int
	verbose              bool
	removeSectionHeaders bool
	skipNonSongs         bool
	filter               *Filter

	httpClient *http.Client
	authClient *http.Client
	baseURL    string
	publicURL  string
	webURL     string
	logger     Logger

	api    *Service
	public *Service
}

const (
	// DefaultBaseURL is the default Genius API endpoint.
	DefaultBaseURL = "https://api.genius.com/"

	// DefaultPublicBaseURL is the default Genius public API endpoint.
	DefaultPublicBaseURL = "https://genius.com/api/"

	// DefaultWebBaseURL is the root that song page paths are relative to.
	DefaultWebBaseURL = "https://genius.com/"

	// DefaultResponseFormat is the text format requested when none is given.
	DefaultResponseFormat = "plain"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 5 * time.Second

	// DefaultSleepTime is the pause after each request.
	DefaultSleepTime = 200 * time.Millisecond
)

var validTextFormats = map[string]bool{
	"dom":      true,
	"plain":    true,
	"html":     true,
	"markdown": true,
}

// NewClient creates a new Genius client.
//
// Returns an error if the configuration is invalid (unknown response format,
// negative retries or an excluded term that is not a valid expression).
func NewClient(cfg Config) (*Client, error) {
	format := cfg.ResponseFormat
	if format == "" {
		format = DefaultResponseFormat
	}
	if err := validateTextFormat(format); err != nil {
		return nil, err
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	}

	filter, err := NewFilter(cfg.ExcludedTerms, cfg.ReplaceDefaultTerms)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	sleepTime := cfg.SleepTime
	if sleepTime == 0 {
		sleepTime = DefaultSleepTime
	}
	if sleepTime < 0 {
		sleepTime = 0
	}

	c := &Client{
		accessToken:          cfg.AccessToken,
		responseFormat:       format,
		timeout:              timeout,
		sleepTime:            sleepTime,
		retries:              cfg.Retries,
		verbose:              cfg.Verbose,
		removeSectionHeaders: cfg.RemoveSectionHeaders,
		skipNonSongs:         !cfg.IncludeNonSongs,
		filter:               filter,
		httpClient:           httpClient,
		baseURL:              withTrailingSlash(cfg.BaseURL, DefaultBaseURL),
		publicURL:            withTrailingSlash(cfg.PublicBaseURL, DefaultPublicBaseURL),
		webURL:               withTrailingSlash(cfg.WebBaseURL, DefaultWebBaseURL),
		logger:               cfg.Logger,
	}

	if cfg.AccessToken != "" {
		// The oauth2 client reuses httpClient's transport via the context.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		c.authClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
	}

	c.api = &Service{client: c, backend: BackendAPI}
	c.public = &Service{client: c, backend: BackendPublic}

	return c, nil
}

// API returns the service for the token-authenticated API.
func (c *Client) API() *Service {
	return c.api
}

// Public returns the service for the unauthenticated public API.
func (c *Client) Public() *Service {
	return c.public
}

// Service returns the service for the given backend.
func (c *Client) Service(backend Backend) *Service {
	if backend == BackendPublic {
		return c.public
	}
	return c.api
}

// metadata returns the backend used for song and artist lookups: the
// authenticated API when a token is configured, the public API otherwise.
func (c *Client) metadata() *Service {
	if c.accessToken != "" {
		return c.api
	}
	return c.public
}

// HasAccessToken reports whether the client can call the authenticated API.
func (c *Client) HasAccessToken() bool {
	return c.accessToken != ""
}

// ExcludedTerms returns the expressions used to flag non-song results.
func (c *Client) ExcludedTerms() []string {
	return c.filter.Terms()
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

// logInfof logs a progress message if verbose output is enabled.
func (c *Client) logInfof(format string, args ...interface{}) {
	if c.verbose && c.logger != nil {
		c.logger.Infof(format, args...)
	}
}

func validateTextFormat(format string) error {
	for _, part := range strings.Split(format, ",") {
		if !validTextFormats[strings.TrimSpace(part)] {
			return fmt.Errorf("%w: unknown text format %q", ErrInvalidConfig, part)
		}
	}
	return nil
}

func withTrailingSlash(u, fallback string) string {
	if u == "" {
		return fallback
	}
	if !strings.HasSuffix(u, "/") {
		return u + "/"
	}
	return u
}
