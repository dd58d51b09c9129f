package models

import "time"

// ChatMessage is one entry in the AI recommendation chat transcript. The
// transcript is append-only within a session and persisted across restarts.
type ChatMessage struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
	// Recommendations holds the catalog records resolved from an assistant
	// reply. Empty for user messages and for replies with no resolvable
	// numbered entries.
	Recommendations []CatalogItem `json:"recommendations,omitempty"`
}
