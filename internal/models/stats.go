package models

// GenreStat is one bar of the profile genre histogram.
type GenreStat struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"` // of total favorites, rounded
}

// ProfileStats holds the read-only counters shown on the profile view.
type ProfileStats struct {
	TotalMovies   int         `json:"total_movies"`
	TotalSeries   int         `json:"total_series"`
	TotalEpisodes int         `json:"total_episodes"`
	TopGenres     []GenreStat `json:"top_genres"`
}
