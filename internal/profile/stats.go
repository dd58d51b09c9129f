package profile

import (
	"math"
	"sort"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/store"
)

const topGenreCount = 3

// Aggregator computes the read-only profile counters from the watch-state
// collections.
type Aggregator struct {
	store *store.Store
}

// NewAggregator creates a new profile aggregator.
func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// Stats unions favorites and watchlist (dedup by identifier), counts movies
// and series separately, and totals watched episodes across the progress
// map. A series is counted once whether it appears in the lists, only in
// the progress map, or in both. The genre histogram is built from
// favorites' embedded genre detail only; with zero favorites it is empty
// and percentages stay at zero.
func (a *Aggregator) Stats() models.ProfileStats {
	favorites := a.store.List(store.Favorites)
	watchlist := a.store.List(store.Watchlist)
	progress := a.store.Progress()

	return Compute(favorites, watchlist, progress)
}

// Compute is the pure aggregation over already-loaded state.
func Compute(favorites, watchlist []models.CatalogItem, progress map[int64][]int64) models.ProfileStats {
	seen := make(map[int64]bool)
	movieCount := 0
	seriesIDs := make(map[int64]bool)

	for _, item := range append(append([]models.CatalogItem{}, favorites...), watchlist...) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		switch item.Kind {
		case models.KindMovie:
			movieCount++
		case models.KindSeries:
			seriesIDs[item.ID] = true
		}
	}

	// Series tracked only through episode progress still count, but a
	// series present in both sources counts once (union, not sum).
	episodeCount := 0
	for seriesID, episodes := range progress {
		seriesIDs[seriesID] = true
		episodeCount += len(episodes)
	}

	return models.ProfileStats{
		TotalMovies:   movieCount,
		TotalSeries:   len(seriesIDs),
		TotalEpisodes: episodeCount,
		TopGenres:     topGenres(favorites),
	}
}

func topGenres(favorites []models.CatalogItem) []models.GenreStat {
	counts := make(map[string]int)
	for _, item := range favorites {
		// Items saved without full genre detail contribute nothing.
		for _, genre := range item.Genres {
			counts[genre.Name]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	stats := make([]models.GenreStat, 0, len(counts))
	for name, count := range counts {
		percent := 0
		if len(favorites) > 0 {
			percent = int(math.Round(float64(count) / float64(len(favorites)) * 100))
		}
		stats = append(stats, models.GenreStat{Name: name, Count: count, Percent: percent})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Name < stats[j].Name
	})

	if len(stats) > topGenreCount {
		stats = stats[:topGenreCount]
	}
	return stats
}
