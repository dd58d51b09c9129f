package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/store"
)

func newPreferencesRouter() (*mux.Router, *store.Store) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	st := store.New(store.NewMemKV(), "en-US", logger)

	h := NewPreferencesHandler(st, logger)
	router := mux.NewRouter()
	router.HandleFunc("/preferences/language", h.Language).Methods(http.MethodGet)
	router.HandleFunc("/preferences/language", h.SetLanguage).Methods(http.MethodPut)
	router.HandleFunc("/quiz/best-score", h.BestScore).Methods(http.MethodGet)
	router.HandleFunc("/quiz/best-score", h.SubmitScore).Methods(http.MethodPost)
	return router, st
}

func TestLanguageDefaultsAndPersists(t *testing.T) {
	router, _ := newPreferencesRouter()

	rec := doRequest(router, http.MethodGet, "/preferences/language", "")
	var body languageBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Language != "en-US" {
		t.Errorf("expected default en-US, got %q", body.Language)
	}

	rec = doRequest(router, http.MethodPut, "/preferences/language", `{"language": "pt-BR"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/preferences/language", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Language != "pt-BR" {
		t.Errorf("expected pt-BR after update, got %q", body.Language)
	}
}

func TestSetLanguageRejectsUnsupported(t *testing.T) {
	router, _ := newPreferencesRouter()

	rec := doRequest(router, http.MethodPut, "/preferences/language", `{"language": "fr-FR"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported language, got %d", rec.Code)
	}
}

func TestSubmitScoreKeepsPersonalBest(t *testing.T) {
	router, st := newPreferencesRouter()

	rec := doRequest(router, http.MethodPost, "/quiz/best-score", `{"score": 7}`)
	var body bestScoreBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Improved || body.Score != 7 {
		t.Errorf("expected first submission to improve to 7, got %+v", body)
	}

	// A lower score leaves the best untouched.
	rec = doRequest(router, http.MethodPost, "/quiz/best-score", `{"score": 3}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Improved || body.Score != 7 {
		t.Errorf("expected best score to stay at 7, got %+v", body)
	}

	if st.BestScore() != 7 {
		t.Errorf("expected persisted best of 7, got %d", st.BestScore())
	}
}
