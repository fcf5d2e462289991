package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jfmyers9/lyricsgenius/internal/config"
	"github.com/jfmyers9/lyricsgenius/internal/lyrics"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure a Genius API access token",
	Long: `Configure a Genius API access token.

An access token is optional: without one lyricsgenius uses the public
Genius API. With one, song and artist lookups use the authenticated API.

This command will:
1. Prompt you for your access token
2. Verify the token against the Genius API
3. Save the token to your config file

You can create a token at: https://genius.com/api-clients`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	fmt.Println("Genius Authentication")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println("You can create an access token at: https://genius.com/api-clients")
	fmt.Println()

	// Check if we already have a token
	if cfg.Genius.AccessToken != "" {
		fmt.Printf("Found existing access token: %s\n", maskToken(cfg.Genius.AccessToken))
		fmt.Print("\nKeep existing token? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.Genius.AccessToken = ""
		}
	}

	if cfg.Genius.AccessToken == "" {
		fmt.Print("Enter your Genius access token: ")
		token, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}
		cfg.Genius.AccessToken = strings.TrimSpace(token)
	}

	if cfg.Genius.AccessToken == "" {
		return fmt.Errorf("an access token is required")
	}

	client, err := lyrics.New(cfg.Genius, logger)
	if err != nil {
		return err
	}

	// Verify the token (with retries)
	fmt.Println("\nVerifying access token...")
	maxRetries := 3
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		err = client.VerifyToken(ctx)
		if err == nil {
			break
		}

		// A rejected token will not become valid on retry
		var apiErr *genius.Error
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return fmt.Errorf("access token was rejected: %w", err)
		}

		if i < maxRetries-1 {
			fmt.Printf("Failed to verify token (attempt %d/%d). Retrying in %v...\n",
				i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to verify access token after %d attempts: %w", maxRetries, err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath := config.GetConfigDir()
	fmt.Printf("\n✓ Access token verified!\n")
	fmt.Printf("✓ Token saved to %s/config.yaml\n", configPath)
	fmt.Println("\nTry it: lyricsgenius song \"To You\" --artist \"Andy Shauf\"")

	return nil
}

// maskToken shows only the last four characters of a token
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
