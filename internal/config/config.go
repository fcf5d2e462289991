package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format template for the song command
	// Default: "{{.FullTitle}}\n\n{{.Lyrics}}"
	OutputFormat string

	// Log level for the CLI (trace, debug, info, warn, error)
	LogLevel string

	// Path of the SQLite lyrics library
	LibraryPath string

	// Genius client settings
	Genius GeniusConfig
}

// GeniusConfig holds Genius specific configuration
type GeniusConfig struct {
	AccessToken          string
	ResponseFormat       string
	Timeout              time.Duration
	SleepTime            time.Duration
	Retries              int
	Verbose              bool
	RemoveSectionHeaders bool
	IncludeNonSongs      bool
	ExcludedTerms        []string
	ReplaceDefaultTerms  bool

	// Endpoint overrides, mostly for testing
	BaseURL       string
	PublicBaseURL string
	WebBaseURL    string
}

// DefaultOutputFormat is the song template used when none is configured.
const DefaultOutputFormat = "{{.FullTitle}}\n\n{{.Lyrics}}"

// Load reads configuration from .env, the config file and environment
func Load() (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", DefaultOutputFormat)
	v.SetDefault("log_level", "info")
	v.SetDefault("library_path", filepath.Join(configDir, "library.db"))
	v.SetDefault("genius.response_format", "plain")
	v.SetDefault("genius.timeout", 5*time.Second)
	v.SetDefault("genius.sleep_time", 200*time.Millisecond)
	v.SetDefault("genius.retries", 0)
	v.SetDefault("genius.verbose", true)
	v.SetDefault("genius.remove_section_headers", false)
	v.SetDefault("genius.include_non_songs", false)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables (LYRICSGENIUS_GENIUS_ACCESS_TOKEN, ...)
	v.SetEnvPrefix("LYRICSGENIUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("genius.access_token", "LYRICSGENIUS_GENIUS_ACCESS_TOKEN", "GENIUS_ACCESS_TOKEN")

	// Map config to struct
	cfg := &Config{
		OutputFormat: v.GetString("output_format"),
		LogLevel:     v.GetString("log_level"),
		LibraryPath:  v.GetString("library_path"),
		Genius: GeniusConfig{
			AccessToken:          v.GetString("genius.access_token"),
			ResponseFormat:       v.GetString("genius.response_format"),
			Timeout:              v.GetDuration("genius.timeout"),
			SleepTime:            v.GetDuration("genius.sleep_time"),
			Retries:              v.GetInt("genius.retries"),
			Verbose:              v.GetBool("genius.verbose"),
			RemoveSectionHeaders: v.GetBool("genius.remove_section_headers"),
			IncludeNonSongs:      v.GetBool("genius.include_non_songs"),
			ExcludedTerms:        v.GetStringSlice("genius.excluded_terms"),
			ReplaceDefaultTerms:  v.GetBool("genius.replace_default_terms"),
			BaseURL:              v.GetString("genius.base_url"),
			PublicBaseURL:        v.GetString("genius.public_base_url"),
			WebBaseURL:           v.GetString("genius.web_base_url"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "lyricsgenius")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("output_format", c.OutputFormat)
	v.Set("log_level", c.LogLevel)
	v.Set("library_path", c.LibraryPath)
	v.Set("genius.access_token", c.Genius.AccessToken)
	v.Set("genius.response_format", c.Genius.ResponseFormat)
	v.Set("genius.timeout", c.Genius.Timeout.String())
	v.Set("genius.sleep_time", c.Genius.SleepTime.String())
	v.Set("genius.retries", c.Genius.Retries)
	v.Set("genius.verbose", c.Genius.Verbose)
	v.Set("genius.remove_section_headers", c.Genius.RemoveSectionHeaders)
	v.Set("genius.include_non_songs", c.Genius.IncludeNonSongs)
	v.Set("genius.replace_default_terms", c.Genius.ReplaceDefaultTerms)
	if len(c.Genius.ExcludedTerms) > 0 {
		v.Set("genius.excluded_terms", c.Genius.ExcludedTerms)
	}

	// Write to file
	return v.WriteConfigAs(configFile)
}
