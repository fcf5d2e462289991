/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jfmyers9/lyricsgenius/internal/config"
	"github.com/jfmyers9/lyricsgenius/internal/lyrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile  string
	logLevel string
	verbose  bool
	quiet    bool
)

// errNotFound is returned by commands whose lookup found nothing
var errNotFound = errors.New("no results found")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lyricsgenius",
	Short: "Download song lyrics and metadata from Genius",
	Long: `lyricsgenius fetches song lyrics and metadata from Genius.

It searches Genius for songs and artists, scrapes lyrics from song pages,
and can save them as JSON or text files or store them in a local library.

An access token is optional. Without one the public Genius API is used;
run 'lyricsgenius auth' to configure a token for the authenticated API.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error; default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print search progress (default: from config, on)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Do not print search progress")
}

// setup loads the configuration and creates the logger shared by the
// commands. Flag overrides apply to the returned config.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := setupLogger(logFile, level)

	if verbose {
		cfg.Genius.Verbose = true
	}
	if quiet {
		cfg.Genius.Verbose = false
	}

	return cfg, logger, nil
}

// newLyricsClient creates the Genius client from the (possibly overridden)
// configuration
func newLyricsClient(cfg *config.Config, logger zerolog.Logger) (*lyrics.Client, error) {
	client, err := lyrics.New(cfg.Genius, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Bool("authenticated", client.IsAuthenticated()).
		Str("version", version).
		Msg("Genius client ready")

	return client, nil
}

func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	// Set up output
	var output io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			output = f
		}
	}

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
