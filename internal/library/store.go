package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"

	_ "modernc.org/sqlite"
)

// Store is a local lyrics library backed by SQLite.
//
// Artists and songs are keyed by their Genius IDs, so storing the same song
// twice updates it in place. Every store call is recorded as a run.
type Store struct {
	db *sql.DB
}

// StoredSong is a song row read back from the library
type StoredSong struct {
	ID          int64
	Title       string
	FullTitle   string
	ArtistID    int64
	ArtistName  string
	Album       string
	ReleaseDate string
	URL         string
	Lyrics      string
	RunID       string
	StoredAt    time.Time
}

// Run records one store operation
type Run struct {
	ID        string
	Kind      string // "song" or "artist"
	Subject   string // Song title or artist name
	SongCount int
	CreatedAt time.Time
}

// SongFilter narrows Songs results
type SongFilter struct {
	Artist string // Optional: only songs whose artist name matches (case-insensitive)
	Limit  int    // Optional: maximum number of rows
}

// Open opens (or creates) the library at dbPath, creating its directory if
// needed. Use ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT,
			image_url TEXT,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			song_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			full_title TEXT,
			artist_id INTEGER,
			artist_name TEXT NOT NULL,
			album TEXT,
			release_date TEXT,
			url TEXT,
			lyrics TEXT NOT NULL,
			run_id TEXT REFERENCES runs(id),
			stored_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist_name COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StoreSong saves a single song and returns the run ID
func (s *Store) StoreSong(ctx context.Context, song *genius.Song) (string, error) {
	return s.store(ctx, "song", song.Title, nil, []*genius.Song{song})
}

// StoreArtist saves an artist with all of its songs and features and returns
// the run ID
func (s *Store) StoreArtist(ctx context.Context, artist *genius.Artist) (string, error) {
	songs := make([]*genius.Song, 0, len(artist.Songs)+len(artist.Features))
	songs = append(songs, artist.Songs...)
	songs = append(songs, artist.Features...)
	return s.store(ctx, "artist", artist.Name, artist, songs)
}

func (s *Store) store(ctx context.Context, kind, subject string, artist *genius.Artist, songs []*genius.Song) (string, error) {
	runID := uuid.New().String()
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, kind, subject, song_count, created_at) VALUES (?, ?, ?, ?, ?)",
		runID, kind, subject, len(songs), now,
	); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	if artist != nil && artist.ID != 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artists (id, name, url, image_url, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				url = excluded.url,
				image_url = excluded.image_url,
				updated_at = excluded.updated_at
		`, artist.ID, artist.Name, artist.URL, artist.ImageURL, now); err != nil {
			return "", fmt.Errorf("failed to store artist %d: %w", artist.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, title, full_title, artist_id, artist_name, album, release_date, url, lyrics, run_id, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			full_title = excluded.full_title,
			artist_id = excluded.artist_id,
			artist_name = excluded.artist_name,
			album = excluded.album,
			release_date = excluded.release_date,
			url = excluded.url,
			lyrics = excluded.lyrics,
			run_id = excluded.run_id,
			stored_at = excluded.stored_at
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, song := range songs {
		if _, err := stmt.ExecContext(ctx,
			song.ID,
			song.Title,
			song.FullTitle,
			song.ArtistID,
			song.Artist,
			song.Album,
			song.ReleaseDate,
			song.URL,
			song.Lyrics,
			runID,
			now,
		); err != nil {
			return "", fmt.Errorf("failed to store song %d: %w", song.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// Songs returns stored songs ordered by artist and title
func (s *Store) Songs(ctx context.Context, filter SongFilter) ([]StoredSong, error) {
	query := `
		SELECT id, title, COALESCE(full_title, ''), COALESCE(artist_id, 0), artist_name,
			COALESCE(album, ''), COALESCE(release_date, ''), COALESCE(url, ''), lyrics,
			COALESCE(run_id, ''), stored_at
		FROM songs
	`
	var args []interface{}
	if filter.Artist != "" {
		query += " WHERE artist_name = ? COLLATE NOCASE"
		args = append(args, filter.Artist)
	}
	query += " ORDER BY artist_name COLLATE NOCASE, title COLLATE NOCASE"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []StoredSong
	for rows.Next() {
		var song StoredSong
		var storedAt int64

		err := rows.Scan(
			&song.ID,
			&song.Title,
			&song.FullTitle,
			&song.ArtistID,
			&song.ArtistName,
			&song.Album,
			&song.ReleaseDate,
			&song.URL,
			&song.Lyrics,
			&song.RunID,
			&storedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}

		song.StoredAt = time.Unix(storedAt, 0)
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}

	return songs, nil
}

// Runs returns the most recent runs first
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, kind, subject, song_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Kind, &r.Subject, &r.SongCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// Count returns the number of stored songs
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
