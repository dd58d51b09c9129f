package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
)

// Collection names one of the persisted catalog-item lists.
type Collection string

const (
	Favorites Collection = "favorites"
	Watchlist Collection = "watchlist"
)

// Storage keys. One key per document; each document is a JSON blob that is
// rewritten whole on every mutation.
const (
	keyFavorites       = "cineverse_favorites"
	keyWatchlist       = "cineverse_watchlist"
	keyProgress        = "cineverse_progress"
	keyLanguage        = "cineverse_lang"
	keyBestScore       = "cineverse_highscore"
	keyChatMessages    = "ai_chat_messages"
	keyRecommendations = "ai_recommendations"
	keySelectedMedia   = "ai_selected_media"
)

// Store is the single source of truth for personalization state: favorites,
// watchlist, per-series episode progress, the chat transcript, the
// accumulated recommendation set, the selected-media prompt context, the
// display-language preference and the quiz best score.
//
// Every mutation reads the current document from the KV, applies the change
// and writes the whole document back before returning. Two Store instances
// sharing one KV therefore race last-write-wins at document granularity;
// that matches the multi-tab behavior this service inherits and is accepted,
// not corrected.
//
// A corrupt or absent document is treated as empty. Read operations never
// fail on bad data; they log and fall open.
type Store struct {
	kv          KV
	defaultLang string
	logger      *logrus.Logger
}

// New creates a Store over the given KV. defaultLang is returned by
// Language when no preference has been saved yet.
func New(kv KV, defaultLang string, logger *logrus.Logger) *Store {
	return &Store{kv: kv, defaultLang: defaultLang, logger: logger}
}

func collectionKey(c Collection) string {
	if c == Watchlist {
		return keyWatchlist
	}
	return keyFavorites
}

// readDoc decodes the document under key into v. Absent or corrupt
// documents leave v untouched (fail open).
func (s *Store) readDoc(key string, v any) {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to read document, treating as empty")
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Corrupt document, treating as empty")
	}
}

// writeDoc persists v under key synchronously.
func (s *Store) writeDoc(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document %q: %w", key, err)
	}
	if err := s.kv.Put(key, data); err != nil {
		return fmt.Errorf("failed to persist document %q: %w", key, err)
	}
	return nil
}

// List returns the collection's entries in insertion order.
func (s *Store) List(c Collection) []models.CatalogItem {
	var items []models.CatalogItem
	s.readDoc(collectionKey(c), &items)
	return items
}

// Contains reports whether the collection holds an entry with the given id.
func (s *Store) Contains(c Collection, id int64) bool {
	for _, item := range s.List(c) {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Add appends the item snapshot to the collection. Adding an id that is
// already present is a no-op; the call is idempotent from the caller's
// point of view.
func (s *Store) Add(c Collection, item models.CatalogItem) error {
	items := s.List(c)
	for _, existing := range items {
		if existing.ID == item.ID {
			return nil
		}
	}
	items = append(items, item)
	return s.writeDoc(collectionKey(c), items)
}

// Remove filters the collection to exclude the given id. Removing an absent
// id is not an error.
func (s *Store) Remove(c Collection, id int64) error {
	items := s.List(c)
	filtered := items[:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return s.writeDoc(collectionKey(c), filtered)
}

// Progress returns the full episode-progress map (series id -> watched
// episode ids). Absence of a series key means zero progress.
func (s *Store) Progress() map[int64][]int64 {
	progress := make(map[int64][]int64)
	s.readDoc(keyProgress, &progress)
	return progress
}

// WatchedEpisodes returns the watched episode ids for one series.
func (s *Store) WatchedEpisodes(seriesID int64) []int64 {
	return s.Progress()[seriesID]
}

// ToggleEpisode adds the episode id to the series' watched set if absent,
// else removes it. Returns the new watched state. Toggling twice restores
// the prior state.
func (s *Store) ToggleEpisode(seriesID, episodeID int64) (bool, error) {
	progress := s.Progress()
	episodes := progress[seriesID]

	watched := true
	filtered := episodes[:0]
	for _, id := range episodes {
		if id == episodeID {
			watched = false
			continue
		}
		filtered = append(filtered, id)
	}
	if watched {
		filtered = append(filtered, episodeID)
	}

	if len(filtered) == 0 {
		delete(progress, seriesID)
	} else {
		progress[seriesID] = filtered
	}

	if err := s.writeDoc(keyProgress, progress); err != nil {
		return false, err
	}
	return watched, nil
}

// Messages returns the chat transcript in order.
func (s *Store) Messages() []models.ChatMessage {
	var messages []models.ChatMessage
	s.readDoc(keyChatMessages, &messages)
	return messages
}

// AppendMessage appends one message to the transcript.
func (s *Store) AppendMessage(msg models.ChatMessage) error {
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	messages := append(s.Messages(), msg)
	return s.writeDoc(keyChatMessages, messages)
}

// ClearMessages discards the whole transcript.
func (s *Store) ClearMessages() error {
	if err := s.kv.Delete(keyChatMessages); err != nil {
		return fmt.Errorf("failed to clear chat transcript: %w", err)
	}
	return nil
}

// Recommendations returns the accumulated recommendation set.
func (s *Store) Recommendations() []models.CatalogItem {
	var items []models.CatalogItem
	s.readDoc(keyRecommendations, &items)
	return items
}

// MergeRecommendations adds the given records to the recommendation set,
// skipping any whose id is already present. Dedup is by identifier, not by
// title/year, since titles collide across distinct productions. Returns the
// records that were actually added, in input order.
func (s *Store) MergeRecommendations(resolved []models.CatalogItem) ([]models.CatalogItem, error) {
	existing := s.Recommendations()
	seen := make(map[int64]bool, len(existing))
	for _, item := range existing {
		seen[item.ID] = true
	}

	var added []models.CatalogItem
	for _, item := range resolved {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		existing = append(existing, item)
		added = append(added, item)
	}

	if len(added) == 0 {
		return nil, nil
	}
	return added, s.writeDoc(keyRecommendations, existing)
}

// ClearRecommendations empties the recommendation set.
func (s *Store) ClearRecommendations() error {
	if err := s.kv.Delete(keyRecommendations); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}
	return nil
}

// SelectedMedia returns the titles selected as prompt context for the chat.
func (s *Store) SelectedMedia() []models.CatalogItem {
	var items []models.CatalogItem
	s.readDoc(keySelectedMedia, &items)
	return items
}

// AddSelectedMedia appends an item to the prompt context (idempotent by id).
func (s *Store) AddSelectedMedia(item models.CatalogItem) error {
	items := s.SelectedMedia()
	for _, existing := range items {
		if existing.ID == item.ID {
			return nil
		}
	}
	return s.writeDoc(keySelectedMedia, append(items, item))
}

// RemoveSelectedMedia removes an item from the prompt context.
func (s *Store) RemoveSelectedMedia(id int64) error {
	items := s.SelectedMedia()
	filtered := items[:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return s.writeDoc(keySelectedMedia, filtered)
}

// Language returns the active display-language preference (e.g. "en-US",
// "pt-BR"), falling back to the configured default.
func (s *Store) Language() string {
	var lang string
	s.readDoc(keyLanguage, &lang)
	if lang == "" {
		return s.defaultLang
	}
	return lang
}

// SetLanguage saves the display-language preference.
func (s *Store) SetLanguage(lang string) error {
	return s.writeDoc(keyLanguage, lang)
}

// BestScore returns the saved quiz best score.
func (s *Store) BestScore() int {
	var score int
	s.readDoc(keyBestScore, &score)
	return score
}

// SetBestScore saves score if it beats the current best. Returns whether it
// did.
func (s *Store) SetBestScore(score int) (bool, error) {
	if score <= s.BestScore() {
		return false, nil
	}
	return true, s.writeDoc(keyBestScore, score)
}
