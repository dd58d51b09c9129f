package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/calendar"
	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/store"
)

// CalendarHandler serves the release calendar projected from the watchlist.
type CalendarHandler struct {
	calendar *calendar.Aggregator
	store    *store.Store
	logger   *logrus.Logger
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(agg *calendar.Aggregator, st *store.Store, logger *logrus.Logger) *CalendarHandler {
	return &CalendarHandler{calendar: agg, store: st, logger: logger}
}

// Upcoming returns the future-dated events, flat by default or grouped by
// month-year (in the active display language) with ?grouped=true.
func (h *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grouped") == "true" {
		groups := h.calendar.UpcomingGrouped(r.Context(), h.store.Language())
		if groups == nil {
			groups = []models.MonthGroup{}
		}
		writeJSON(w, http.StatusOK, groups)
		return
	}

	events := h.calendar.Upcoming(r.Context())
	if events == nil {
		events = []models.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
