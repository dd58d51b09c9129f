package recommend

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
)

// Searcher resolves a title (with an optional year hint, 0 = none) to
// catalog search results in provider ranking order.
type Searcher interface {
	SearchTitle(ctx context.Context, query string, year int) ([]models.CatalogItem, error)
}

// Reconciler converts an assistant's free-form reply into a small set of
// verified catalog records.
type Reconciler struct {
	search Searcher
	logger *logrus.Logger
}

// NewReconciler creates a new reconciler over the given catalog searcher.
func NewReconciler(search Searcher, logger *logrus.Logger) *Reconciler {
	return &Reconciler{search: search, logger: logger}
}

// Resolve extracts numbered title mentions from text and resolves each one
// against the catalog. Each candidate is resolved independently: a failed
// or empty search drops that candidate silently and the rest proceed. The
// result is deduplicated by identifier, in candidate order, with provider
// search ranking trusted as-is (first movie/series result wins).
func (r *Reconciler) Resolve(ctx context.Context, text string) []models.CatalogItem {
	candidates := Extract(text)

	var resolved []models.CatalogItem
	seen := make(map[int64]bool)
	for _, candidate := range candidates {
		results, err := r.search.SearchTitle(ctx, candidate.Title, candidate.Year)
		if err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"title": candidate.Title,
				"year":  candidate.Year,
			}).Warn("Candidate search failed, skipping")
			continue
		}

		item, ok := firstTitle(results)
		if !ok {
			r.logger.WithField("title", candidate.Title).Debug("No catalog match for candidate")
			continue
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		resolved = append(resolved, item)
	}
	return resolved
}

// firstTitle returns the first result that is a movie or series, discarding
// people and other kinds.
func firstTitle(results []models.CatalogItem) (models.CatalogItem, bool) {
	for _, item := range results {
		if item.Kind == models.KindMovie || item.Kind == models.KindSeries {
			return item, true
		}
	}
	return models.CatalogItem{}, false
}
