package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/search"
	"github.com/cineverse/cineverse/internal/services/tmdb"
)

// CatalogHandler proxies browse, search and detail reads to the catalog
// provider.
type CatalogHandler struct {
	catalog *tmdb.Client
	search  *search.Service
	logger  *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *tmdb.Client, searcher *search.Service, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, search: searcher, logger: logger}
}

func kindFromPath(r *http.Request) (models.MediaKind, bool) {
	switch mux.Vars(r)["kind"] {
	case "movie":
		return models.KindMovie, true
	case "tv":
		return models.KindSeries, true
	}
	return "", false
}

func (h *CatalogHandler) upstreamError(w http.ResponseWriter, err error, what string) {
	h.logger.WithError(err).WithField("operation", what).Error("Catalog request failed")
	writeError(w, http.StatusBadGateway, "catalog provider unavailable")
}

// Search runs a multi search through the generation-counter gate. Superseded
// results return 409 so the caller knows to drop them.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	page, current, err := h.search.Search(r.Context(), query, queryInt(r, "page", 1))
	if err != nil {
		h.upstreamError(w, err, "search")
		return
	}
	if !current {
		writeError(w, http.StatusConflict, "superseded by a newer search")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Discover lists titles of one kind with provider filter parameters passed
// through (with_genres, sort_by, page, ...).
func (h *CatalogHandler) Discover(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}

	filters := url.Values{}
	for key, values := range r.URL.Query() {
		for _, v := range values {
			filters.Add(key, v)
		}
	}

	page, err := h.catalog.Discover(r.Context(), kind, filters)
	if err != nil {
		h.upstreamError(w, err, "discover")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Popular lists currently popular movies.
func (h *CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Popular(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		h.upstreamError(w, err, "popular")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// TopRated lists top-rated movies.
func (h *CatalogHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.TopRated(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		h.upstreamError(w, err, "top rated")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// MovieDetails returns one movie with full genre detail.
func (h *CatalogHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	detail, err := h.catalog.MovieDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "movie details")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SeriesDetails returns one series including its next scheduled episode.
func (h *CatalogHandler) SeriesDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	detail, err := h.catalog.SeriesDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "series details")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SeasonDetails returns one season with its episode list.
func (h *CatalogHandler) SeasonDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	number, ok := pathID(r, "season")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season number")
		return
	}

	detail, err := h.catalog.SeasonDetails(r.Context(), id, int(number))
	if err != nil {
		h.upstreamError(w, err, "season details")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// PersonDetails returns one person record.
func (h *CatalogHandler) PersonDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	person, err := h.catalog.PersonDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "person details")
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// PersonCredits lists the movies a person is credited on.
func (h *CatalogHandler) PersonCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	credits, err := h.catalog.PersonMovieCredits(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "person credits")
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

// Credits returns the cast and crew of one title.
func (h *CatalogHandler) Credits(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	credits, err := h.catalog.Credits(r.Context(), kind, id)
	if err != nil {
		h.upstreamError(w, err, "credits")
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

// Videos returns the trailers and clips of one title.
func (h *CatalogHandler) Videos(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	videos, err := h.catalog.Videos(r.Context(), kind, id)
	if err != nil {
		h.upstreamError(w, err, "videos")
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// Similar lists titles the provider recommends alongside one title.
func (h *CatalogHandler) Similar(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.catalog.Recommendations(r.Context(), kind, id)
	if err != nil {
		h.upstreamError(w, err, "recommendations")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Reviews lists user reviews of a movie.
func (h *CatalogHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	reviews, err := h.catalog.Reviews(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// WatchProviders returns per-region streaming availability for one title.
func (h *CatalogHandler) WatchProviders(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	availability, err := h.catalog.WatchProviders(r.Context(), kind, id)
	if err != nil {
		h.upstreamError(w, err, "watch providers")
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

// Genres lists the genre vocabulary for one media kind.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media kind")
		return
	}
	genres, err := h.catalog.Genres(r.Context(), kind)
	if err != nil {
		h.upstreamError(w, err, "genres")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// Collection returns a movie collection and its member movies.
func (h *CatalogHandler) Collection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	collection, err := h.catalog.CollectionDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "collection")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}
