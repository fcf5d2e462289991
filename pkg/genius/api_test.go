package genius

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_Backends(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		switch r.URL.Path {
		case "/api/search":
			writeBody(t, w, http.StatusOK, `{"meta":{"status":200},"response":{"hits":[
				{"index":"song","type":"song","result":{"id":1,"title":"To You"}},
				{"index":"song","type":"song","result":{"id":2,"title":"Neon Skyline"}}
			]}}`)
		default:
			writeBody(t, w, http.StatusOK, `{"meta":{"status":200},"response":{"sections":[
				{"type":"artist","hits":[{"type":"artist","result":{"id":10,"name":"Andy Shauf"}}]}
			]}}`)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{AccessToken: "token"})
	ctx := context.Background()

	t.Run("API hits become one song section", func(t *testing.T) {
		resp, err := client.API().Search(ctx, "to you", SearchOptions{})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if gotPath != "/api/search" || gotQuery != "to you" {
			t.Errorf("unexpected request %s?q=%s", gotPath, gotQuery)
		}
		if len(resp.Sections) != 1 || resp.Sections[0].Type != "song" {
			t.Fatalf("expected one song section, got %+v", resp.Sections)
		}
		if len(resp.Sections[0].Hits) != 2 {
			t.Errorf("expected 2 hits, got %d", len(resp.Sections[0].Hits))
		}
	})

	t.Run("API rejects other types", func(t *testing.T) {
		if _, err := client.API().Search(ctx, "x", SearchOptions{Type: "artist"}); err == nil {
			t.Error("expected error searching artists on the API backend")
		}
	})

	tests := []struct {
		name     string
		typ      string
		wantPath string
	}{
		{name: "multi by default", typ: "", wantPath: "/public/search/multi"},
		{name: "explicit multi", typ: "multi", wantPath: "/public/search/multi"},
		{name: "typed section", typ: "artist", wantPath: "/public/search/artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Public().Search(ctx, "andy", SearchOptions{Type: tt.typ})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, gotPath)
			}
			if len(resp.Sections) != 1 || resp.Sections[0].Hits[0].Result.String("name") != "Andy Shauf" {
				t.Errorf("unexpected sections %+v", resp.Sections)
			}
		})
	}
}

func TestArtistSongs(t *testing.T) {
	var gotSort, gotPage, gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotSort, gotPage, gotPerPage = q.Get("sort"), q.Get("page"), q.Get("per_page")
		writeBody(t, w, http.StatusOK, `{"meta":{"status":200},"response":{
			"songs":[{"id":1,"title":"To You"}],"next_page":3}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{})

	page, err := client.Public().ArtistSongs(context.Background(), 10, ArtistSongsOptions{
		PerPage: 50,
		Page:    2,
		Sort:    "release_date",
	})
	if err != nil {
		t.Fatalf("ArtistSongs() error = %v", err)
	}
	if gotSort != "release_date" || gotPage != "2" || gotPerPage != "50" {
		t.Errorf("unexpected params sort=%s page=%s per_page=%s", gotSort, gotPage, gotPerPage)
	}
	if len(page.Songs) != 1 || page.NextPage == nil || *page.NextPage != 3 {
		t.Errorf("unexpected page %+v", page)
	}

	if _, err := client.Public().ArtistSongs(context.Background(), 10, ArtistSongsOptions{Sort: "random"}); err == nil {
		t.Error("expected error for unknown sort")
	}
}

func TestReferents(t *testing.T) {
	var gotSongID, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSongID = r.URL.Query().Get("song_id")
		gotFormat = r.URL.Query().Get("text_format")
		writeBody(t, w, http.StatusOK, `{"meta":{"status":200},"response":{"referents":[
			{"id":7,"fragment":"I said I'm sorry","song_id":1,
			 "annotations":[{"id":70,"body":{"plain":"An apology"}}]}
		]}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{AccessToken: "token"})
	ctx := context.Background()

	t.Run("by song", func(t *testing.T) {
		refs, err := client.API().Referents(ctx, ReferentsOptions{SongID: 1})
		if err != nil {
			t.Fatalf("Referents() error = %v", err)
		}
		if gotSongID != "1" || gotFormat != "plain" {
			t.Errorf("unexpected params song_id=%s text_format=%s", gotSongID, gotFormat)
		}
		if len(refs) != 1 || len(refs[0].Annotations) != 1 {
			t.Fatalf("unexpected referents %+v", refs)
		}
		if got := refs[0].Annotations[0].Text("plain"); got != "An apology" {
			t.Errorf("expected annotation text, got %q", got)
		}
	})

	t.Run("song and web page together", func(t *testing.T) {
		if _, err := client.API().Referents(ctx, ReferentsOptions{SongID: 1, WebPageID: 2}); err == nil {
			t.Error("expected error when both IDs are set")
		}
	})

	t.Run("invalid text format", func(t *testing.T) {
		_, err := client.API().Referents(ctx, ReferentsOptions{SongID: 1, TextFormat: "pdf"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestAnnotation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/annotations/70" {
			writeBody(t, w, http.StatusNotFound, `{"meta":{"status":404,"message":"Not found"}}`)
			return
		}
		writeBody(t, w, http.StatusOK, `{"meta":{"status":200},"response":{
			"annotation":{"id":70,"votes_total":4,"body":{"html":"<p>An apology</p>"}},
			"referent":{"id":7,"fragment":"I said I'm sorry"}}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{AccessToken: "token"})

	annotation, referent, err := client.API().Annotation(context.Background(), 70, "html")
	if err != nil {
		t.Fatalf("Annotation() error = %v", err)
	}
	if annotation.VotesTotal != 4 || annotation.Text("html") != "<p>An apology</p>" {
		t.Errorf("unexpected annotation %+v", annotation)
	}
	if referent == nil || referent.Fragment != "I said I'm sorry" {
		t.Errorf("unexpected referent %+v", referent)
	}

	_, _, err = client.API().Annotation(context.Background(), 1, "")
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.NotFound() {
		t.Errorf("expected not found error, got %v", err)
	}
}
