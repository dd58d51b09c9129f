package search

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
)

// MultiSearcher is the catalog surface behind search-as-you-type.
type MultiSearcher interface {
	SearchMulti(ctx context.Context, query string, year, page int) (models.SearchPage, error)
}

// Service serializes search-as-you-type against the catalog with a
// generation counter: every query bumps the generation, and a completed
// request whose generation is stale is discarded deterministically instead
// of racing the newer one.
type Service struct {
	catalog    MultiSearcher
	generation atomic.Uint64
	logger     *logrus.Logger
}

// NewService creates a new search service.
func NewService(catalog MultiSearcher, logger *logrus.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// Search runs one query. The returned bool reports whether the result is
// current: false means a newer query superseded this one while it was in
// flight and its result must not be applied.
func (s *Service) Search(ctx context.Context, query string, page int) (models.SearchPage, bool, error) {
	gen := s.generation.Add(1)

	result, err := s.catalog.SearchMulti(ctx, query, 0, page)
	if s.generation.Load() != gen {
		s.logger.WithField("query", query).Debug("Discarding stale search result")
		return models.SearchPage{}, false, nil
	}
	if err != nil {
		return models.SearchPage{}, true, err
	}
	return result, true, nil
}
