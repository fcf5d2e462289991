package genius

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveOptions controls what happens when the output file already exists.
type SaveOptions struct {
	// Overwrite replaces an existing file without asking.
	Overwrite bool

	// Confirm is asked whether to replace an existing file when Overwrite is
	// false. A nil Confirm keeps the file.
	Confirm func(path string) (bool, error)
}

// SaveArtists writes several artists to one JSON document of the form
// {"artists": [...]}.
//
// If the file exists and opts.Overwrite is false, opts.Confirm decides;
// when the file is kept ErrNotOverwritten is returned.
func SaveArtists(filename string, artists []*Artist, opts SaveOptions) error {
	if filepath.Ext(filename) == "" {
		filename += ".json"
	}

	doc := struct {
		Artists []*Artist `json:"artists"`
	}{Artists: artists}
	if doc.Artists == nil {
		doc.Artists = []*Artist{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("genius: failed to encode artists: %w", err)
	}
	return writeFile(filename, data, opts)
}

// writeFile writes data to path, honoring the overwrite policy.
func writeFile(path string, data []byte, opts SaveOptions) error {
	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		ok := false
		if opts.Confirm != nil {
			ok, err = opts.Confirm(path)
			if err != nil {
				return fmt.Errorf("genius: confirm overwrite of %s: %w", path, err)
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotOverwritten, path)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("genius: stat %s: %w", path, err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("genius: create directory for %s: %w", path, err)
		}
	}

	// Write atomically via temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("genius: write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("genius: write %s: %w", path, err)
	}
	return nil
}
