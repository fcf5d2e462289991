package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/lyricsgenius/internal/library"
	"github.com/jfmyers9/lyricsgenius/internal/lyrics"
	"github.com/spf13/cobra"
)

// artistCmd represents the artist command
var artistCmd = &cobra.Command{
	Use:   "artist [NAME]",
	Short: "Collect the songs of an artist",
	Long: `Search Genius for an artist and collect its songs with lyrics.

Songs are collected page by page from the artist's catalog until
--max-songs songs are held or the catalog ends. The collected songs are
printed as a table; use --save to write them to a file or --store to add
them to the local library.`,
	Args: cobra.ArbitraryArgs,
	RunE: runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().Int64("id", 0, "Genius artist ID (skips the search)")
	artistCmd.Flags().IntP("max-songs", "n", 0, "Maximum number of songs (0 = whole catalog, -1 = none)")
	artistCmd.Flags().String("sort", "popularity", "Catalog order: title, popularity or release_date")
	artistCmd.Flags().Int("per-page", 20, "Catalog page size (at most 50)")
	artistCmd.Flags().Bool("no-full-info", false, "Skip fetching the complete record of every song")
	artistCmd.Flags().Bool("include-features", false, "Count songs where the artist is only featured")
	artistCmd.Flags().Bool("allow-name-change", false, "Use the artist name reported by Genius")
	artistCmd.Flags().Bool("strip-headers", false, "Remove section headers such as [Chorus]")
	artistCmd.Flags().StringP("save", "s", "", "Save the artist to this file (.json or .txt; --save= for the default name)")
	artistCmd.Flags().Bool("overwrite", false, "Overwrite the save file without asking")
	artistCmd.Flags().Bool("store", false, "Store the songs in the local library")
}

// artistOptions reads the catalog flags shared by artist and export
func artistOptions(cmd *cobra.Command) lyrics.ArtistOptions {
	maxSongs, _ := cmd.Flags().GetInt("max-songs")
	sort, _ := cmd.Flags().GetString("sort")
	perPage, _ := cmd.Flags().GetInt("per-page")
	noFullInfo, _ := cmd.Flags().GetBool("no-full-info")
	includeFeatures, _ := cmd.Flags().GetBool("include-features")
	allowNameChange, _ := cmd.Flags().GetBool("allow-name-change")

	return lyrics.ArtistOptions{
		MaxSongs:        maxSongs,
		Sort:            sort,
		PerPage:         perPage,
		FullInfo:        !noFullInfo,
		IncludeFeatures: includeFeatures,
		AllowNameChange: allowNameChange,
	}
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	name := strings.Join(args, " ")
	artistID, _ := cmd.Flags().GetInt64("id")
	if name == "" && artistID == 0 {
		return fmt.Errorf("an artist name or --id is required")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if strip, _ := cmd.Flags().GetBool("strip-headers"); strip {
		cfg.Genius.RemoveSectionHeaders = true
	}

	client, err := newLyricsClient(cfg, logger)
	if err != nil {
		return err
	}

	artist, err := client.Artist(ctx, name, artistID, artistOptions(cmd))
	if err != nil {
		return err
	}
	if artist == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "No artist found for %q.\n", name)
		return errNotFound
	}

	logger.Info().
		Int64("artist_id", artist.ID).
		Str("artist", artist.Name).
		Int("songs", artist.NumSongs).
		Int("features", len(artist.Features)).
		Msg("Collected artist")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, artist.String())
	if artist.NumSongs > 0 {
		fmt.Fprintln(out)
		writeSongTable(out, artist.Songs)
	}

	if cmd.Flags().Changed("save") {
		savePath, _ := cmd.Flags().GetString("save")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		path, err := artist.SaveLyrics(savePath, saveOptions(overwrite))
		if err != nil {
			return fmt.Errorf("failed to save artist: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}

	if store, _ := cmd.Flags().GetBool("store"); store {
		lib, err := library.Open(cfg.LibraryPath)
		if err != nil {
			return fmt.Errorf("failed to open library: %w", err)
		}
		defer lib.Close()

		runID, err := lib.StoreArtist(ctx, artist)
		if err != nil {
			return err
		}
		logger.Info().Str("run_id", runID).Int64("artist_id", artist.ID).Msg("Stored artist in library")
	}

	return nil
}
