package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/lyricsgenius/internal/library"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/spf13/cobra"
)

// songCmd represents the song command
var songCmd = &cobra.Command{
	Use:   "song [TITLE]",
	Short: "Print the lyrics of a song",
	Long: `Search Genius for a song and print its lyrics.

The output format can be customized in ~/.config/lyricsgenius/config.yaml
using a Go template. Available fields: .Title, .FullTitle, .Artist, .Album,
.ReleaseDate, .URL, .Lyrics

Exit codes:
  0 - Song found
  1 - No song with lyrics found, or an error occurred`,
	Args: cobra.ArbitraryArgs,
	RunE: runSong,
}

func init() {
	rootCmd.AddCommand(songCmd)

	songCmd.Flags().StringP("artist", "a", "", "Artist name to narrow the search")
	songCmd.Flags().Int64("id", 0, "Genius song ID (skips the search)")
	songCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	songCmd.Flags().Bool("no-full-info", false, "Skip fetching the complete song record")
	songCmd.Flags().Bool("strip-headers", false, "Remove section headers such as [Chorus]")
	songCmd.Flags().StringP("save", "s", "", "Save the song to this file (.json or .txt; --save= for the default name)")
	songCmd.Flags().Bool("overwrite", false, "Overwrite the save file without asking")
	songCmd.Flags().Bool("store", false, "Store the song in the local library")
}

func runSong(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	title := strings.Join(args, " ")
	artistName, _ := cmd.Flags().GetString("artist")
	songID, _ := cmd.Flags().GetInt64("id")
	if title == "" && songID == 0 {
		return fmt.Errorf("a song title or --id is required")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	// Check for flag overrides
	if strip, _ := cmd.Flags().GetBool("strip-headers"); strip {
		cfg.Genius.RemoveSectionHeaders = true
	}
	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	client, err := newLyricsClient(cfg, logger)
	if err != nil {
		return err
	}

	noFullInfo, _ := cmd.Flags().GetBool("no-full-info")
	song, err := client.Song(ctx, title, artistName, songID, !noFullInfo)
	if err != nil {
		return err
	}
	if song == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No song with lyrics found.")
		return errNotFound
	}

	logger.Debug().
		Int64("song_id", song.ID).
		Str("title", song.Title).
		Str("artist", song.Artist).
		Msg("Found song")

	output, err := formatSong(song, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)

	if cmd.Flags().Changed("save") {
		savePath, _ := cmd.Flags().GetString("save")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		path, err := song.SaveLyrics(savePath, saveOptions(overwrite))
		if err != nil {
			return fmt.Errorf("failed to save song: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}

	if store, _ := cmd.Flags().GetBool("store"); store {
		lib, err := library.Open(cfg.LibraryPath)
		if err != nil {
			return fmt.Errorf("failed to open library: %w", err)
		}
		defer lib.Close()

		runID, err := lib.StoreSong(ctx, song)
		if err != nil {
			return err
		}
		logger.Info().Str("run_id", runID).Int64("song_id", song.ID).Msg("Stored song in library")
	}

	return nil
}

// saveOptions builds the overwrite policy for the save flags
func saveOptions(overwrite bool) genius.SaveOptions {
	return genius.SaveOptions{
		Overwrite: overwrite,
		Confirm:   confirmOverwrite,
	}
}
