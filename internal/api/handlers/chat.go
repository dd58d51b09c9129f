package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/chat"
	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/store"
)

// ChatHandler exposes the AI recommendation chat: the transcript, the
// accumulated recommendation set and the selected-media prompt context.
type ChatHandler struct {
	chat   *chat.Service
	store  *store.Store
	logger *logrus.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *chat.Service, st *store.Store, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{chat: svc, store: st, logger: logger}
}

type sendRequest struct {
	Message string `json:"message"`
}

// Send submits a user message and returns the assistant reply. Provider
// failures come back as a normal assistant message, not an HTTP error.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chat.Send(r.Context(), req.Message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to process chat message")
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// Messages returns the persisted transcript.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages := h.chat.Messages()
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// ClearMessages discards the transcript.
func (h *ChatHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.Clear(); err != nil {
		h.logger.WithError(err).Error("Failed to clear chat transcript")
		writeError(w, http.StatusInternalServerError, "failed to clear transcript")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recommendations returns the accumulated recommendation set.
func (h *ChatHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	items := h.store.Recommendations()
	if items == nil {
		items = []models.CatalogItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ClearRecommendations empties the recommendation set.
func (h *ChatHandler) ClearRecommendations(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearRecommendations(); err != nil {
		h.logger.WithError(err).Error("Failed to clear recommendations")
		writeError(w, http.StatusInternalServerError, "failed to clear recommendations")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectedMedia returns the titles used as prompt context.
func (h *ChatHandler) SelectedMedia(w http.ResponseWriter, r *http.Request) {
	items := h.store.SelectedMedia()
	if items == nil {
		items = []models.CatalogItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// AddSelectedMedia adds a title to the prompt context.
func (h *ChatHandler) AddSelectedMedia(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid catalog item")
		return
	}

	if err := h.store.AddSelectedMedia(item); err != nil {
		h.logger.WithError(err).Error("Failed to add selected media")
		writeError(w, http.StatusInternalServerError, "failed to save selection")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveSelectedMedia removes a title from the prompt context.
func (h *ChatHandler) RemoveSelectedMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.RemoveSelectedMedia(id); err != nil {
		h.logger.WithError(err).Error("Failed to remove selected media")
		writeError(w, http.StatusInternalServerError, "failed to remove selection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
