package lyrics

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jfmyers9/lyricsgenius/internal/config"
	"github.com/jfmyers9/lyricsgenius/pkg/genius"
	"github.com/rs/zerolog"
)

func testConfig(server *httptest.Server) config.GeniusConfig {
	return config.GeniusConfig{
		ResponseFormat: "plain",
		SleepTime:      -1,
		BaseURL:        server.URL + "/api/",
		PublicBaseURL:  server.URL + "/public/",
		WebBaseURL:     server.URL + "/web/",
	}
}

func TestNew(t *testing.T) {
	client, err := New(config.GeniusConfig{ResponseFormat: "plain"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Genius() == nil {
		t.Fatal("expected non-nil genius client")
	}
	if client.IsAuthenticated() {
		t.Error("expected client without token to be unauthenticated")
	}

	if _, err := New(config.GeniusConfig{ResponseFormat: "xml"}, zerolog.Nop()); !errors.Is(err, genius.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		status  int
		body    string
		wantErr bool
	}{
		{
			name:   "valid token",
			token:  "good",
			status: http.StatusOK,
			body:   `{"meta":{"status":200},"response":{"hits":[]}}`,
		},
		{
			name:    "rejected token",
			token:   "bad",
			status:  http.StatusUnauthorized,
			body:    `{"error":"invalid_token","error_description":"The access token provided is invalid"}`,
			wantErr: true,
		},
		{
			name:    "no token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/search" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer "+tt.token {
					t.Errorf("expected bearer %s, got %q", tt.token, got)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cfg := testConfig(server)
			cfg.AccessToken = tt.token
			client, err := New(cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			err = client.VerifyToken(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSong_LogsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/search/multi":
			_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"sections":[{"type":"song","hits":[
				{"type":"song","result":{"id":1,"title":"To You","path":"/to-you-lyrics","lyrics_state":"complete","primary_artist":{"id":10,"name":"Andy Shauf"}}}
			]}]}}`))
		case "/web/to-you-lyrics":
			_, _ = w.Write([]byte(`<div data-lyrics-container="true">Words</div>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	var buf bytes.Buffer
	cfg := testConfig(server)
	cfg.Verbose = true
	client, err := New(cfg, zerolog.New(&buf))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	song, err := client.Song(context.Background(), "To You", "", 0, false)
	if err != nil {
		t.Fatalf("Song() error = %v", err)
	}
	if song == nil || song.Lyrics != "Words" {
		t.Fatalf("unexpected song %+v", song)
	}

	logs := buf.String()
	if !strings.Contains(logs, `Searching for \"To You\"`) {
		t.Errorf("expected search progress in logs, got %s", logs)
	}
	if !strings.Contains(logs, `"component":"genius"`) {
		t.Errorf("expected component field in logs, got %s", logs)
	}
}
