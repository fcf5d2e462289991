package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export NAME...",
	Short: "Export several artists to one JSON file",
	Long: `Collect the songs of each named artist and write them to a single
JSON document of the form {"artists": [...]}.

If the output file exists you are asked before it is replaced, unless
--overwrite is given. Artists that cannot be found are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "Lyrics.json", "Output file")
	exportCmd.Flags().Bool("overwrite", false, "Overwrite the output file without asking")
	exportCmd.Flags().IntP("max-songs", "n", 0, "Maximum number of songs per artist (0 = whole catalog)")
	exportCmd.Flags().String("sort", "popularity", "Catalog order: title, popularity or release_date")
	exportCmd.Flags().Int("per-page", 20, "Catalog page size (at most 50)")
	exportCmd.Flags().Bool("no-full-info", false, "Skip fetching the complete record of every song")
	exportCmd.Flags().Bool("include-features", false, "Count songs where the artist is only featured")
	exportCmd.Flags().Bool("allow-name-change", false, "Use the artist name reported by Genius")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	client, err := newLyricsClient(cfg, logger)
	if err != nil {
		return err
	}

	opts := artistOptions(cmd)
	var artists []*genius.Artist
	for _, name := range args {
		artist, err := client.Artist(ctx, name, 0, opts)
		if err != nil {
			return err
		}
		if artist == nil {
			logger.Warn().Str("artist", name).Msg("Artist not found, skipping")
			continue
		}
		logger.Info().Str("artist", artist.Name).Int("songs", artist.NumSongs).Msg("Collected artist")
		artists = append(artists, artist)
	}

	if len(artists) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No artists found.")
		return errNotFound
	}

	output, _ := cmd.Flags().GetString("output")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	if err := genius.SaveArtists(output, artists, saveOptions(overwrite)); err != nil {
		if errors.Is(err, genius.ErrNotOverwritten) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipping file save: %s exists.\n", output)
			return nil
		}
		return fmt.Errorf("failed to export artists: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d artists to %s\n", len(artists), output)
	return nil
}

// confirmOverwrite asks on the terminal whether to replace path.
// Without a terminal the file is kept.
func confirmOverwrite(path string) (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, nil
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return false, nil
	}

	overwrite := false
	err = huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return overwrite, nil
}
