package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/store"
)

// PreferencesHandler serves the display-language preference and the quiz
// best score.
type PreferencesHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(st *store.Store, logger *logrus.Logger) *PreferencesHandler {
	return &PreferencesHandler{store: st, logger: logger}
}

var supportedLanguages = map[string]bool{
	"en-US": true,
	"pt-BR": true,
}

type languageBody struct {
	Language string `json:"language"`
}

// Language returns the active display language.
func (h *PreferencesHandler) Language(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languageBody{Language: h.store.Language()})
}

// SetLanguage saves the display language. It takes effect on the next
// catalog request.
func (h *PreferencesHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var body languageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !supportedLanguages[body.Language] {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	if err := h.store.SetLanguage(body.Language); err != nil {
		h.logger.WithError(err).Error("Failed to save language preference")
		writeError(w, http.StatusInternalServerError, "failed to save preference")
		return
	}
	writeJSON(w, http.StatusOK, body)
}

type bestScoreBody struct {
	Score    int  `json:"score"`
	Improved bool `json:"improved,omitempty"`
}

// BestScore returns the saved quiz best score.
func (h *PreferencesHandler) BestScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bestScoreBody{Score: h.store.BestScore()})
}

// SubmitScore records a quiz result. Only a new personal best is persisted;
// the response reports whether the submission improved it.
func (h *PreferencesHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var body bestScoreBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Score < 0 {
		writeError(w, http.StatusBadRequest, "invalid score")
		return
	}

	improved, err := h.store.SetBestScore(body.Score)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save best score")
		writeError(w, http.StatusInternalServerError, "failed to save score")
		return
	}
	writeJSON(w, http.StatusOK, bestScoreBody{Score: h.store.BestScore(), Improved: improved})
}
