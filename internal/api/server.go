package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/api/handlers"
	"github.com/cineverse/cineverse/internal/api/middleware"
	"github.com/cineverse/cineverse/internal/calendar"
	"github.com/cineverse/cineverse/internal/chat"
	"github.com/cineverse/cineverse/internal/config"
	"github.com/cineverse/cineverse/internal/profile"
	"github.com/cineverse/cineverse/internal/search"
	"github.com/cineverse/cineverse/internal/services/tmdb"
	"github.com/cineverse/cineverse/internal/store"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// Deps bundles the services the routes are built from.
type Deps struct {
	Store    *store.Store
	Catalog  *tmdb.Client
	Search   *search.Service
	Chat     *chat.Service
	Calendar *calendar.Aggregator
	Profile  *profile.Aggregator
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Deps, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	s.setupRoutes(router, deps)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(router, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router *mux.Router, deps Deps) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	router.Handle("/health", healthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Search, s.logger)
	api.HandleFunc("/search", catalogHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/discover/{kind}", catalogHandler.Discover).Methods(http.MethodGet)
	api.HandleFunc("/movies/popular", catalogHandler.Popular).Methods(http.MethodGet)
	api.HandleFunc("/movies/top-rated", catalogHandler.TopRated).Methods(http.MethodGet)
	api.HandleFunc("/movie/{id:[0-9]+}", catalogHandler.MovieDetails).Methods(http.MethodGet)
	api.HandleFunc("/movie/{id:[0-9]+}/reviews", catalogHandler.Reviews).Methods(http.MethodGet)
	api.HandleFunc("/tv/{id:[0-9]+}", catalogHandler.SeriesDetails).Methods(http.MethodGet)
	api.HandleFunc("/tv/{id:[0-9]+}/season/{season:[0-9]+}", catalogHandler.SeasonDetails).Methods(http.MethodGet)
	api.HandleFunc("/person/{id:[0-9]+}", catalogHandler.PersonDetails).Methods(http.MethodGet)
	api.HandleFunc("/person/{id:[0-9]+}/credits", catalogHandler.PersonCredits).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/{id:[0-9]+}/credits", catalogHandler.Credits).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/{id:[0-9]+}/videos", catalogHandler.Videos).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/{id:[0-9]+}/similar", catalogHandler.Similar).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/{id:[0-9]+}/providers", catalogHandler.WatchProviders).Methods(http.MethodGet)
	api.HandleFunc("/genres/{kind}", catalogHandler.Genres).Methods(http.MethodGet)
	api.HandleFunc("/collection/{id:[0-9]+}", catalogHandler.Collection).Methods(http.MethodGet)

	watchState := handlers.NewWatchStateHandler(deps.Store, s.logger)
	api.HandleFunc("/lists/{collection}", watchState.List).Methods(http.MethodGet)
	api.HandleFunc("/lists/{collection}", watchState.Add).Methods(http.MethodPost)
	api.HandleFunc("/lists/{collection}/{id:[0-9]+}", watchState.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/progress", watchState.Progress).Methods(http.MethodGet)
	api.HandleFunc("/progress/{seriesID:[0-9]+}", watchState.SeriesProgress).Methods(http.MethodGet)
	api.HandleFunc("/progress/{seriesID:[0-9]+}/episode/{episodeID:[0-9]+}", watchState.ToggleEpisode).Methods(http.MethodPost)

	calendarHandler := handlers.NewCalendarHandler(deps.Calendar, deps.Store, s.logger)
	api.HandleFunc("/calendar", calendarHandler.Upcoming).Methods(http.MethodGet)

	chatHandler := handlers.NewChatHandler(deps.Chat, deps.Store, s.logger)
	api.HandleFunc("/chat/messages", chatHandler.Messages).Methods(http.MethodGet)
	api.HandleFunc("/chat/messages", chatHandler.Send).Methods(http.MethodPost)
	api.HandleFunc("/chat/messages", chatHandler.ClearMessages).Methods(http.MethodDelete)
	api.HandleFunc("/chat/recommendations", chatHandler.Recommendations).Methods(http.MethodGet)
	api.HandleFunc("/chat/recommendations", chatHandler.ClearRecommendations).Methods(http.MethodDelete)
	api.HandleFunc("/chat/selected", chatHandler.SelectedMedia).Methods(http.MethodGet)
	api.HandleFunc("/chat/selected", chatHandler.AddSelectedMedia).Methods(http.MethodPost)
	api.HandleFunc("/chat/selected/{id:[0-9]+}", chatHandler.RemoveSelectedMedia).Methods(http.MethodDelete)

	profileHandler := handlers.NewProfileHandler(deps.Profile, s.logger)
	api.HandleFunc("/profile/stats", profileHandler.Stats).Methods(http.MethodGet)

	preferences := handlers.NewPreferencesHandler(deps.Store, s.logger)
	api.HandleFunc("/preferences/language", preferences.Language).Methods(http.MethodGet)
	api.HandleFunc("/preferences/language", preferences.SetLanguage).Methods(http.MethodPut)
	api.HandleFunc("/quiz/best-score", preferences.BestScore).Methods(http.MethodGet)
	api.HandleFunc("/quiz/best-score", preferences.SubmitScore).Methods(http.MethodPost)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
