package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/profile"
)

// ProfileHandler serves the aggregated profile statistics.
type ProfileHandler struct {
	profile *profile.Aggregator
	logger  *logrus.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(agg *profile.Aggregator, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profile: agg, logger: logger}
}

// Stats returns the movie/series/episode counters and top-genre histogram.
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profile.Stats())
}
