package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/store"
)

const maxConcurrentFetches = 4

// SeriesDetailer provides the series detail needed to find the next
// episode scheduled to air.
type SeriesDetailer interface {
	SeriesDetails(ctx context.Context, id int64) (*models.SeriesDetail, error)
}

// Aggregator projects the watchlist into a future-dated release calendar.
// The projection is never persisted; it is rebuilt in full on every call.
type Aggregator struct {
	store   *store.Store
	catalog SeriesDetailer
	now     func() time.Time
	logger  *logrus.Logger
}

// NewAggregator creates a new calendar aggregator.
func NewAggregator(st *store.Store, catalog SeriesDetailer, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		store:   st,
		catalog: catalog,
		now:     time.Now,
		logger:  logger,
	}
}

// Upcoming builds the flat event list: one event per watchlist movie whose
// release date is today or later, one per watchlist series with a next
// episode airing today or later. Per-entry fetches run concurrently and a
// failure on one entry only drops that entry. Events are sorted ascending
// by date.
func (a *Aggregator) Upcoming(ctx context.Context) []models.CalendarEvent {
	items := dedupByID(a.store.List(store.Watchlist))
	today := truncateToDay(a.now())

	var mu sync.Mutex
	var events []models.CalendarEvent

	p := pool.New().WithMaxGoroutines(maxConcurrentFetches)
	for _, item := range items {
		item := item
		p.Go(func() {
			event, ok := a.buildEvent(ctx, item, today)
			if !ok {
				return
			}
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
		})
	}
	p.Wait()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// UpcomingGrouped groups the upcoming events by month-year, labeled in the
// given display language, chronologically ordered.
func (a *Aggregator) UpcomingGrouped(ctx context.Context, lang string) []models.MonthGroup {
	var groups []models.MonthGroup
	for _, event := range a.Upcoming(ctx) {
		label := MonthYearLabel(lang, event.Date)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, models.MonthGroup{Label: label})
		}
		last := &groups[len(groups)-1]
		last.Events = append(last.Events, event)
	}
	return groups
}

func (a *Aggregator) buildEvent(ctx context.Context, item models.CatalogItem, today time.Time) (models.CalendarEvent, bool) {
	if item.Kind == models.KindMovie {
		date, ok := parseDay(item.ReleaseDate)
		if !ok || date.Before(today) {
			return models.CalendarEvent{}, false
		}
		return models.CalendarEvent{
			ID:        item.ID,
			Kind:      models.KindMovie,
			Title:     item.Title,
			Date:      date,
			ImagePath: firstNonEmpty(item.BackdropPath, item.PosterPath),
			Overview:  item.Overview,
		}, true
	}

	detail, err := a.catalog.SeriesDetails(ctx, item.ID)
	if err != nil {
		a.logger.WithError(err).WithField("series_id", item.ID).Warn("Failed to fetch series detail for calendar, skipping")
		return models.CalendarEvent{}, false
	}

	next := detail.NextEpisodeToAir
	if next == nil {
		return models.CalendarEvent{}, false
	}
	date, ok := parseDay(next.AirDate)
	if !ok || date.Before(today) {
		return models.CalendarEvent{}, false
	}

	network := ""
	if len(detail.Networks) > 0 {
		network = detail.Networks[0]
	}
	return models.CalendarEvent{
		ID:        detail.ID,
		Kind:      models.KindSeries,
		Title:     detail.Title,
		Date:      date,
		ImagePath: firstNonEmpty(detail.BackdropPath, detail.PosterPath),
		Episode:   next,
		Network:   network,
	}, true
}

func dedupByID(items []models.CatalogItem) []models.CatalogItem {
	seen := make(map[int64]bool, len(items))
	deduped := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		deduped = append(deduped, item)
	}
	return deduped
}

// parseDay parses a provider YYYY-MM-DD date.
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateToDay drops the time-of-day component so date comparisons are
// date-only, matching the midnight truncation the original view used.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
