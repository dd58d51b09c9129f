package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/calendar"
	"github.com/cineverse/cineverse/internal/services/tmdb"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	catalog  *tmdb.Client
	calendar *calendar.Aggregator
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(catalog *tmdb.Client, cal *calendar.Aggregator, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		catalog:  catalog,
		calendar: cal,
		logger:   logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every hour: evict expired catalog cache entries
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runCacheSweep()
	})
	if err != nil {
		return fmt.Errorf("failed to add cache sweep job: %w", err)
	}

	// Every day at 08:00: log the upcoming-release digest
	_, err = s.cron.AddFunc("0 8 * * *", func() {
		s.runCalendarDigest()
	})
	if err != nil {
		return fmt.Errorf("failed to add calendar digest job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runCacheSweep executes the cache sweep job
func (s *Scheduler) runCacheSweep() {
	s.logger.Debug("Running catalog cache sweep")
	s.catalog.SweepCache()
}

// runCalendarDigest executes the calendar digest job
func (s *Scheduler) runCalendarDigest() {
	s.logger.Info("Running calendar digest")
	ctx := context.Background()

	events := s.calendar.Upcoming(ctx)
	if len(events) == 0 {
		s.logger.Info("No upcoming releases on the calendar")
		return
	}

	for _, event := range events {
		s.logger.WithFields(logrus.Fields{
			"title": event.Title,
			"kind":  event.Kind,
			"date":  event.Date.Format("2006-01-02"),
		}).Info("Upcoming release")
	}
}
