package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/config"
	"github.com/cineverse/cineverse/internal/models"
)

func newTestClient(t *testing.T, baseURL string, language LanguageFunc) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		TMDBBaseURL:            baseURL,
		TMDBAPIKey:             "test-key",
		CatalogCacheTTLMinutes: 15,
	}
	client, err := NewClient(cfg, language, logger)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func fixedLanguage(lang string) LanguageFunc {
	return func() string { return lang }
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{TMDBBaseURL: "http://example.invalid"}
	if _, err := NewClient(cfg, fixedLanguage("en-US"), logger); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestRequestsCarryLanguageAndKey(t *testing.T) {
	var gotLanguage, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.URL.Query().Get("language")
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	// The language source is read per request, so a preference change is
	// picked up without rebuilding the client.
	lang := "en-US"
	client := newTestClient(t, server.URL, func() string { return lang })

	if _, err := client.Popular(context.Background(), 1); err != nil {
		t.Fatalf("popular failed: %v", err)
	}
	if gotLanguage != "en-US" || gotKey != "test-key" {
		t.Errorf("expected language and key params, got language=%q key=%q", gotLanguage, gotKey)
	}

	lang = "pt-BR"
	if _, err := client.TopRated(context.Background(), 1); err != nil {
		t.Fatalf("top rated failed: %v", err)
	}
	if gotLanguage != "pt-BR" {
		t.Errorf("expected updated language, got %q", gotLanguage)
	}
}

func TestResponsesAreCachedPerLanguage(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"results": [{"id": 1, "title": "Dune"}], "total_results": 1}`))
	}))
	defer server.Close()

	lang := "en-US"
	client := newTestClient(t, server.URL, func() string { return lang })

	for i := 0; i < 3; i++ {
		if _, err := client.Popular(context.Background(), 1); err != nil {
			t.Fatalf("popular failed: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected one upstream request for repeated calls, got %d", got)
	}

	// A different language is a different cache entry.
	lang = "pt-BR"
	if _, err := client.Popular(context.Background(), 1); err != nil {
		t.Fatalf("popular failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected cache miss for new language, got %d requests", got)
	}
}

func TestTransientFailureIsRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"results": [{"id": 1, "title": "Dune"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, fixedLanguage("en-US"))
	page, err := client.Popular(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
	if len(page.Results) != 1 {
		t.Errorf("expected one result after retry, got %d", len(page.Results))
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, fixedLanguage("en-US"))
	if _, err := client.MovieDetails(context.Background(), 42); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single attempt for a client error, got %d", calls.Load())
	}
}

func TestSearchMultiAssignsKinds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 1, "media_type": "movie", "title": "Dune", "release_date": "2021-10-22"},
				{"id": 2, "media_type": "tv", "name": "Dark", "first_air_date": "2017-12-01"},
				{"id": 3, "media_type": "person", "name": "Denis Villeneuve", "profile_path": "/dv.jpg"}
			],
			"total_pages": 1,
			"total_results": 3
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, fixedLanguage("en-US"))
	page, err := client.SearchMulti(context.Background(), "du", 0, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(page.Results))
	}

	movie, series, person := page.Results[0], page.Results[1], page.Results[2]
	if movie.Kind != models.KindMovie || movie.Title != "Dune" || movie.ReleaseDate != "2021-10-22" {
		t.Errorf("unexpected movie mapping: %+v", movie)
	}
	if series.Kind != models.KindSeries || series.Title != "Dark" || series.ReleaseDate != "2017-12-01" {
		t.Errorf("unexpected series mapping: %+v", series)
	}
	if person.Kind != models.KindPerson || person.Title != "Denis Villeneuve" || person.PosterPath != "/dv.jpg" {
		t.Errorf("unexpected person mapping: %+v", person)
	}
}

func TestSeriesDetailsMapsNetworksAndNextEpisode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/100" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 100,
			"name": "Severance",
			"first_air_date": "2022-02-18",
			"number_of_seasons": 2,
			"status": "Returning Series",
			"networks": [{"name": "Apple TV+"}],
			"next_episode_to_air": {"id": 9001, "name": "Cold Harbor", "air_date": "2026-04-10", "season_number": 3, "episode_number": 1}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, fixedLanguage("en-US"))
	detail, err := client.SeriesDetails(context.Background(), 100)
	if err != nil {
		t.Fatalf("series details failed: %v", err)
	}
	if detail.Kind != models.KindSeries || detail.Title != "Severance" {
		t.Errorf("unexpected series item: %+v", detail.CatalogItem)
	}
	if len(detail.Networks) != 1 || detail.Networks[0] != "Apple TV+" {
		t.Errorf("unexpected networks: %v", detail.Networks)
	}
	if detail.NextEpisodeToAir == nil || detail.NextEpisodeToAir.AirDate != "2026-04-10" {
		t.Errorf("unexpected next episode: %+v", detail.NextEpisodeToAir)
	}
}
