package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
)

type stubSearcher struct {
	results map[string][]models.CatalogItem
	err     map[string]error
	queries []string
}

func (s *stubSearcher) SearchTitle(ctx context.Context, query string, year int) ([]models.CatalogItem, error) {
	s.queries = append(s.queries, query)
	if err := s.err[query]; err != nil {
		return nil, err
	}
	return s.results[query], nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func movie(id int64, title string) models.CatalogItem {
	return models.CatalogItem{ID: id, Kind: models.KindMovie, Title: title}
}

func TestResolveFiveWellFormedLines(t *testing.T) {
	search := &stubSearcher{results: map[string][]models.CatalogItem{
		"Inception":    {movie(1, "Inception")},
		"Dark":         {{ID: 2, Kind: models.KindSeries, Title: "Dark"}},
		"The Prestige": {movie(3, "The Prestige")},
		"Severance":    {{ID: 4, Kind: models.KindSeries, Title: "Severance"}},
		"Coherence":    {movie(5, "Coherence")},
	}}
	r := NewReconciler(search, testLogger())

	text := "1. Inception (2010)\n2. Dark (2017)\n3. The Prestige (2006)\n4. Severance (2022)\n5. Coherence (2013)"
	resolved := r.Resolve(context.Background(), text)

	if len(resolved) != 5 {
		t.Fatalf("expected 5 resolved entries, got %d", len(resolved))
	}
	seen := make(map[int64]bool)
	for i, item := range resolved {
		if seen[item.ID] {
			t.Errorf("duplicate identifier %d in resolved set", item.ID)
		}
		seen[item.ID] = true
		if item.ID != int64(i+1) {
			t.Errorf("position %d: expected catalog-search order, got id %d", i, item.ID)
		}
	}
}

func TestResolveSkipsMalformedLine(t *testing.T) {
	search := &stubSearcher{results: map[string][]models.CatalogItem{
		"Alien":        {movie(1, "Alien")},
		"Blade Runner": {movie(2, "Blade Runner")},
		"Moon":         {movie(4, "Moon")},
		"Arrival":      {movie(5, "Arrival")},
	}}
	r := NewReconciler(search, testLogger())

	// Line 3 has no leading number and must be ignored without aborting.
	text := "1. Alien (1979)\n2. Blade Runner (1982)\nSunshine (2007)\n4. Moon (2009)\n5. Arrival (2016)"
	resolved := r.Resolve(context.Background(), text)

	if len(resolved) != 4 {
		t.Fatalf("expected 4 resolved entries, got %d", len(resolved))
	}
}

func TestResolveIsolatesCandidateFailures(t *testing.T) {
	search := &stubSearcher{
		results: map[string][]models.CatalogItem{
			"Heat":   {movie(1, "Heat")},
			"Ronin":  {movie(3, "Ronin")},
		},
		err: map[string]error{
			"Thief": errors.New("upstream timeout"),
		},
	}
	r := NewReconciler(search, testLogger())

	text := "1. Heat (1995)\n2. Thief (1981)\n3. Ronin (1998)"
	resolved := r.Resolve(context.Background(), text)

	if len(resolved) != 2 {
		t.Fatalf("one failing candidate must not abort the rest; got %d entries", len(resolved))
	}
	if len(search.queries) != 3 {
		t.Errorf("all candidates should be attempted, got queries %v", search.queries)
	}
}

func TestResolveDiscardsNonTitleResults(t *testing.T) {
	search := &stubSearcher{results: map[string][]models.CatalogItem{
		// A person outranks the movie; the reconciler must skip it.
		"Amadeus": {
			{ID: 9, Kind: models.KindPerson, Title: "Amadeus Serafini"},
			movie(10, "Amadeus"),
		},
		// Only people: the candidate is dropped silently.
		"Spielberg": {
			{ID: 11, Kind: models.KindPerson, Title: "Steven Spielberg"},
		},
	}}
	r := NewReconciler(search, testLogger())

	resolved := r.Resolve(context.Background(), "1. Amadeus (1984)\n2. Spielberg")
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved entry, got %d", len(resolved))
	}
	if resolved[0].ID != 10 {
		t.Errorf("expected the first movie/series result to win, got id %d", resolved[0].ID)
	}
}

func TestResolveDedupsRepeatedCandidates(t *testing.T) {
	search := &stubSearcher{results: map[string][]models.CatalogItem{
		"Dune": {movie(7, "Dune")},
	}}
	r := NewReconciler(search, testLogger())

	resolved := r.Resolve(context.Background(), "1. Dune (2021)\n2. Dune (2021)")
	if len(resolved) != 1 {
		t.Fatalf("expected duplicate identifiers to collapse, got %d entries", len(resolved))
	}
}
