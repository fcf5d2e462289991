package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/lyricsgenius/internal/library"
	"github.com/spf13/cobra"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List songs stored in the local library",
	Long: `List the songs stored with 'song --store' or 'artist --store'.

The library is a SQLite database, by default at
~/.config/lyricsgenius/library.db (config key: library_path).`,
	Args: cobra.NoArgs,
	RunE: runLibrary,
}

func init() {
	rootCmd.AddCommand(libraryCmd)

	libraryCmd.Flags().StringP("artist", "a", "", "Only songs by this artist")
	libraryCmd.Flags().IntP("limit", "n", 0, "Maximum number of songs (0 = all)")
	libraryCmd.Flags().Bool("runs", false, "List store runs instead of songs")
}

func runLibrary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	lib, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	out := cmd.OutOrStdout()

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := lib.Runs(ctx, limit)
		if err != nil {
			return err
		}
		for _, r := range list {
			fmt.Fprintf(out, "%s  %s  %s  %s  %d songs\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.ID,
				padToWidth(r.Kind, 6),
				padToWidth(r.Subject, titleWidth),
				r.SongCount)
		}
		return nil
	}

	artistName, _ := cmd.Flags().GetString("artist")
	songs, err := lib.Songs(ctx, library.SongFilter{Artist: artistName, Limit: limit})
	if err != nil {
		return err
	}
	logger.Debug().Int("songs", len(songs)).Str("path", cfg.LibraryPath).Msg("Read library")

	if len(songs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "The library is empty.")
		return nil
	}

	fmt.Fprintf(out, "%s  %s  %s\n",
		padToWidth("ARTIST", albumWidth),
		padToWidth("TITLE", titleWidth),
		"ALBUM")
	for _, s := range songs {
		fmt.Fprintf(out, "%s  %s  %s\n",
			padToWidth(s.ArtistName, albumWidth),
			padToWidth(s.Title, titleWidth),
			s.Album)
	}
	return nil
}
