package models

import "time"

// CalendarEvent is a derived, never-persisted projection of one watchlist
// entry onto a future release date. Movies use their own release date;
// series use the air date of their next scheduled episode.
type CalendarEvent struct {
	ID        int64     `json:"id"`
	Kind      MediaKind `json:"kind"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	ImagePath string    `json:"image_path,omitempty"`
	Overview  string    `json:"overview,omitempty"`
	Network   string    `json:"network,omitempty"`
	// Episode carries the next-episode detail for series events.
	Episode *Episode `json:"episode,omitempty"`
}

// MonthGroup is a run of calendar events sharing a month-year label. The
// label is rendered in the active display language.
type MonthGroup struct {
	Label  string          `json:"label"`
	Events []CalendarEvent `json:"events"`
}
