package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medialetter/internal/core"
)

const itemsResponse = `{
	"Items": [
		{
			"Id": "m1",
			"Name": "The Matrix",
			"Type": "Movie",
			"ProductionYear": 1999,
			"Overview": "A hacker discovers reality is simulated.",
			"Genres": ["Action", "Sci-Fi"],
			"OfficialRating": "R",
			"CommunityRating": 8.7,
			"DateCreated": "2025-03-01T10:00:00Z",
			"LibraryName": "Movies",
			"People": [
				{"Name": "Lana Wachowski", "Type": "Director"},
				{"Name": "Lilly Wachowski", "Type": "Director"},
				{"Name": "Keanu Reeves", "Type": "Actor"},
				{"Name": "A", "Type": "Actor"},
				{"Name": "B", "Type": "Actor"},
				{"Name": "C", "Type": "Actor"},
				{"Name": "D", "Type": "Actor"},
				{"Name": "E", "Type": "Actor"}
			],
			"ImageTags": {"Primary": "abc123"}
		},
		{
			"Id": "e1",
			"Name": "Chapter One",
			"Type": "Episode",
			"SeriesName": "Stranger Things",
			"ParentIndexNumber": 4,
			"IndexNumber": 1,
			"DateCreated": "2025-03-02T10:00:00Z",
			"LibraryName": "TV Shows"
		},
		{
			"Id": "a1",
			"Name": "OK Computer",
			"Type": "MusicAlbum",
			"AlbumArtist": "Radiohead",
			"ChildCount": 12,
			"DateCreated": "2025-03-03T10:00:00Z",
			"LibraryName": "Music"
		}
	],
	"TotalRecordCount": 3
}`

func TestRecentlyAdded_RequestShape(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Write([]byte(`{"Items": []}`))
	}))
	defer srv.Close()

	client := NewJellyfinClient(srv.URL+"/", "token123", true, srv.Client())
	since := time.Date(2025, time.February, 23, 0, 0, 0, 0, time.UTC)
	_, err := client.RecentlyAdded(context.Background(), Query{
		Since: since,
		Types: []string{"Movie", "Episode"},
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("RecentlyAdded() error = %v", err)
	}

	if got.URL.Path != "/Items" {
		t.Errorf("path = %q, want /Items", got.URL.Path)
	}
	if got.Header.Get("X-Emby-Token") != "token123" {
		t.Error("missing or wrong X-Emby-Token header")
	}
	q := got.URL.Query()
	checks := map[string]string{
		"Recursive":        "true",
		"SortBy":           "DateCreated",
		"SortOrder":        "Descending",
		"MinDateCreated":   "2025-02-23T00:00:00Z",
		"IncludeItemTypes": "Movie,Episode",
		"Limit":            "20",
	}
	for key, want := range checks {
		if q.Get(key) != want {
			t.Errorf("query %s = %q, want %q", key, q.Get(key), want)
		}
	}
}

func TestRecentlyAdded_MapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itemsResponse))
	}))
	defer srv.Close()

	client := NewJellyfinClient(srv.URL, "token", true, srv.Client())
	records, err := client.RecentlyAdded(context.Background(), Query{Since: time.Now().AddDate(0, 0, -7), Limit: 10})
	if err != nil {
		t.Fatalf("RecentlyAdded() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	movie := records[0]
	if movie.Title != "The Matrix" || movie.Year != 1999 || movie.Rating != "R" {
		t.Errorf("movie fields mismapped: %+v", movie)
	}
	if movie.Director != "Lana Wachowski" {
		t.Errorf("Director = %q, want first director only", movie.Director)
	}
	if len(movie.Cast) != core.MaxCastNames {
		t.Errorf("Cast length = %d, want %d", len(movie.Cast), core.MaxCastNames)
	}
	if movie.PosterURL != srv.URL+"/Items/m1/Images/Primary" {
		t.Errorf("PosterURL = %q", movie.PosterURL)
	}

	episode := records[1]
	if episode.SeriesName != "Stranger Things" || episode.SeasonNumber != 4 || episode.EpisodeNumber != 1 {
		t.Errorf("episode fields mismapped: %+v", episode)
	}
	if episode.PosterURL != "" {
		t.Error("episode without image tags should have no poster")
	}

	album := records[2]
	if album.AlbumArtist != "Radiohead" || album.TrackCount != 12 {
		t.Errorf("album fields mismapped: %+v", album)
	}
}

func TestRecentlyAdded_PostersDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itemsResponse))
	}))
	defer srv.Close()

	client := NewJellyfinClient(srv.URL, "token", false, srv.Client())
	records, err := client.RecentlyAdded(context.Background(), Query{Limit: 10})
	if err != nil {
		t.Fatalf("RecentlyAdded() error = %v", err)
	}
	if records[0].PosterURL != "" {
		t.Error("poster references should be omitted when disabled")
	}
}

func TestRecentlyAdded_LibraryFilterAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itemsResponse))
	}))
	defer srv.Close()

	client := NewJellyfinClient(srv.URL, "token", false, srv.Client())

	records, err := client.RecentlyAdded(context.Background(), Query{
		Libraries: []string{"movies"},
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("RecentlyAdded() error = %v", err)
	}
	if len(records) != 1 || records[0].Library != "Movies" {
		t.Errorf("case-insensitive library filter failed: %+v", records)
	}

	records, err = client.RecentlyAdded(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatalf("RecentlyAdded() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("limit not applied, got %d records", len(records))
	}
}

func TestRecentlyAdded_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewJellyfinClient(srv.URL, "bad", false, srv.Client())
	if _, err := client.RecentlyAdded(context.Background(), Query{Limit: 5}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
