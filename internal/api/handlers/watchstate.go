package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/store"
)

// WatchStateHandler exposes the favorites and watchlist collections and the
// per-series episode progress.
type WatchStateHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewWatchStateHandler creates a new watch-state handler.
func NewWatchStateHandler(st *store.Store, logger *logrus.Logger) *WatchStateHandler {
	return &WatchStateHandler{store: st, logger: logger}
}

func collectionFromPath(r *http.Request) (store.Collection, bool) {
	switch mux.Vars(r)["collection"] {
	case "favorites":
		return store.Favorites, true
	case "watchlist":
		return store.Watchlist, true
	}
	return "", false
}

// List returns the collection in insertion order.
func (h *WatchStateHandler) List(w http.ResponseWriter, r *http.Request) {
	collection, ok := collectionFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	items := h.store.List(collection)
	if items == nil {
		items = []models.CatalogItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Add saves the posted catalog-item snapshot into the collection. Adding an
// id that is already present succeeds without duplicating.
func (h *WatchStateHandler) Add(w http.ResponseWriter, r *http.Request) {
	collection, ok := collectionFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid catalog item")
		return
	}
	if item.Kind != models.KindMovie && item.Kind != models.KindSeries {
		writeError(w, http.StatusBadRequest, "item must be a movie or series")
		return
	}

	if err := h.store.Add(collection, item); err != nil {
		h.logger.WithError(err).Error("Failed to add item to collection")
		writeError(w, http.StatusInternalServerError, "failed to save item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Remove deletes the id from the collection. Removing an absent id succeeds.
func (h *WatchStateHandler) Remove(w http.ResponseWriter, r *http.Request) {
	collection, ok := collectionFromPath(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.Remove(collection, id); err != nil {
		h.logger.WithError(err).Error("Failed to remove item from collection")
		writeError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Progress returns the full series -> watched-episode-ids map.
func (h *WatchStateHandler) Progress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Progress())
}

// SeriesProgress returns the watched episode ids of one series. An untracked
// series yields an empty list.
func (h *WatchStateHandler) SeriesProgress(w http.ResponseWriter, r *http.Request) {
	seriesID, ok := pathID(r, "seriesID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid series id")
		return
	}

	episodes := h.store.WatchedEpisodes(seriesID)
	if episodes == nil {
		episodes = []int64{}
	}
	writeJSON(w, http.StatusOK, episodes)
}

type toggleResponse struct {
	Watched bool `json:"watched"`
}

// ToggleEpisode flips one episode's watched state and reports the new state.
func (h *WatchStateHandler) ToggleEpisode(w http.ResponseWriter, r *http.Request) {
	seriesID, ok := pathID(r, "seriesID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid series id")
		return
	}
	episodeID, ok := pathID(r, "episodeID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid episode id")
		return
	}

	watched, err := h.store.ToggleEpisode(seriesID, episodeID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to toggle episode")
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Watched: watched})
}
