//go:build integration
// +build integration

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary builds the CLI into a temp directory
func buildBinary(t testing.TB) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "lyricsgenius_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// newGeniusServer serves a tiny catalog on the public API and song pages
func newGeniusServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/search/multi":
			_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"sections":[
				{"type":"top_hit","hits":[{"type":"song","result":{"id":1,"title":"To You","path":"/to-you-lyrics","lyrics_state":"complete","primary_artist":{"id":10,"name":"Andy Shauf"}}}]},
				{"type":"artist","hits":[{"type":"artist","result":{"id":10,"name":"Andy Shauf"}}]}
			]}}`))
		case "/public/songs/1":
			_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"song":{"id":1,"title":"To You","full_title":"To You by Andy Shauf","path":"/to-you-lyrics","lyrics_state":"complete","primary_artist":{"id":10,"name":"Andy Shauf"},"album":{"id":5,"name":"The Neon Skyline"}}}}`))
		case "/public/artists/10":
			_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"artist":{"id":10,"name":"Andy Shauf"}}}`))
		case "/public/artists/10/songs":
			_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"songs":[{"id":1,"title":"To You","path":"/to-you-lyrics","lyrics_state":"complete","primary_artist":{"id":10,"name":"Andy Shauf"}}],"next_page":null}}`))
		case "/web/to-you-lyrics":
			_, _ = w.Write([]byte(`<html><body><div data-lyrics-container="true">[Verse 1]<br>I said I'm sorry</div></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
}

// runBinary runs the CLI against server with an isolated home directory
func runBinary(t *testing.T, bin string, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	cmd := exec.Command(bin, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"GENIUS_ACCESS_TOKEN=",
		"LYRICSGENIUS_GENIUS_ACCESS_TOKEN=",
		"LYRICSGENIUS_GENIUS_PUBLIC_BASE_URL="+server.URL+"/public/",
		"LYRICSGENIUS_GENIUS_WEB_BASE_URL="+server.URL+"/web/",
		"LYRICSGENIUS_GENIUS_SLEEP_TIME=-1ns",
		"LYRICSGENIUS_LOG_LEVEL=error",
	)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// TestSongCommand runs "song" end to end
func TestSongCommand(t *testing.T) {
	bin := buildBinary(t)
	server := newGeniusServer()
	defer server.Close()

	output, err := runBinary(t, bin, server, "song", "To You", "--artist", "Andy Shauf", "--strip-headers")
	if err != nil {
		t.Fatalf("song command failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "To You by Andy Shauf") {
		t.Errorf("expected full title in output, got %q", output)
	}
	if !strings.Contains(output, "I said I'm sorry") {
		t.Errorf("expected lyrics in output, got %q", output)
	}
	if strings.Contains(output, "[Verse 1]") {
		t.Errorf("expected section headers to be stripped, got %q", output)
	}
}

// TestSongCommand_NotFound checks the exit code when no song has lyrics
func TestSongCommand_NotFound(t *testing.T) {
	bin := buildBinary(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"sections":[]}}`))
	}))
	defer server.Close()

	output, err := runBinary(t, bin, server, "song", "Nothing Here")
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v\n%s", err, output)
	}
	if !strings.Contains(output, "No song with lyrics found.") {
		t.Errorf("expected not found message, got %q", output)
	}
}

// TestArtistCommand runs "artist" end to end and saves the result
func TestArtistCommand(t *testing.T) {
	bin := buildBinary(t)
	server := newGeniusServer()
	defer server.Close()

	savePath := filepath.Join(t.TempDir(), "andy.txt")
	output, err := runBinary(t, bin, server, "artist", "Andy Shauf", "--max-songs", "5", "--save", savePath)
	if err != nil {
		t.Fatalf("artist command failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "Andy Shauf, 1 song") {
		t.Errorf("expected artist summary, got %q", output)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("expected saved lyrics: %v", err)
	}
	if !strings.Contains(string(data), "I said I'm sorry") {
		t.Errorf("expected lyrics in saved file, got %q", data)
	}
}

// BenchmarkSongCommand benchmarks one full song lookup
func BenchmarkSongCommand(b *testing.B) {
	bin := buildBinary(b)
	server := newGeniusServer()
	defer server.Close()

	home := b.TempDir()
	env := append(os.Environ(),
		"HOME="+home,
		"LYRICSGENIUS_GENIUS_PUBLIC_BASE_URL="+server.URL+"/public/",
		"LYRICSGENIUS_GENIUS_WEB_BASE_URL="+server.URL+"/web/",
		"LYRICSGENIUS_GENIUS_SLEEP_TIME=-1ns",
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cmd := exec.Command(bin, "song", "To You")
		cmd.Env = env
		if err := cmd.Run(); err != nil {
			b.Fatalf("song command failed: %v", err)
		}
	}
}
