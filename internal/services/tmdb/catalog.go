package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cineverse/cineverse/internal/models"
)

// titleResult is the raw list-endpoint shape for movies, series and (in
// multi-search) people. The provider signals movies with title/release_date
// and series with name/first_air_date; the explicit media kind is assigned
// here, once, and carried on the record from then on.
type titleResult struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ProfilePath  string  `json:"profile_path"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
	GenreIDs     []int64 `json:"genre_ids"`
}

func (r titleResult) kind(fallback models.MediaKind) models.MediaKind {
	switch r.MediaType {
	case "movie":
		return models.KindMovie
	case "tv":
		return models.KindSeries
	case "person":
		return models.KindPerson
	}
	return fallback
}

func (r titleResult) toCatalogItem(fallback models.MediaKind) models.CatalogItem {
	item := models.CatalogItem{
		ID:           r.ID,
		Kind:         r.kind(fallback),
		Title:        r.Title,
		ReleaseDate:  r.ReleaseDate,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		VoteAverage:  r.VoteAverage,
		Overview:     r.Overview,
		GenreIDs:     r.GenreIDs,
	}
	if item.Kind == models.KindSeries {
		item.Title = r.Name
		item.ReleaseDate = r.FirstAirDate
	}
	if item.Kind == models.KindPerson {
		item.Title = r.Name
		item.PosterPath = r.ProfilePath
	}
	return item
}

type resultsPage struct {
	Page         int           `json:"page"`
	Results      []titleResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

func (p resultsPage) toSearchPage(fallback models.MediaKind) models.SearchPage {
	page := models.SearchPage{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Results:      make([]models.CatalogItem, 0, len(p.Results)),
	}
	for _, r := range p.Results {
		page.Results = append(page.Results, r.toCatalogItem(fallback))
	}
	return page
}

func kindPath(kind models.MediaKind) string {
	if kind == models.KindSeries {
		return "tv"
	}
	return "movie"
}

// SearchMulti searches movies, series and people in one call. An optional
// year (0 = none) is passed through as a disambiguation hint.
func (c *Client) SearchMulti(ctx context.Context, query string, year, page int) (models.SearchPage, error) {
	params := url.Values{}
	params.Set("query", query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	var raw resultsPage
	if err := c.get(ctx, "search/multi", params, &raw); err != nil {
		return models.SearchPage{}, fmt.Errorf("multi search failed: %w", err)
	}
	return raw.toSearchPage(""), nil
}

// SearchTitle returns the first page of multi-search results for a title,
// including person records; callers that need only movies/series filter by
// kind.
func (c *Client) SearchTitle(ctx context.Context, query string, year int) ([]models.CatalogItem, error) {
	page, err := c.SearchMulti(ctx, query, year, 1)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Discover lists titles of one kind filtered by the given provider query
// parameters (with_genres, sort_by, ...).
func (c *Client) Discover(ctx context.Context, kind models.MediaKind, filters url.Values) (models.SearchPage, error) {
	params := url.Values{}
	for key, values := range filters {
		for _, v := range values {
			params.Add(key, v)
		}
	}

	var raw resultsPage
	if err := c.get(ctx, "discover/"+kindPath(kind), params, &raw); err != nil {
		return models.SearchPage{}, fmt.Errorf("discover failed: %w", err)
	}
	return raw.toSearchPage(kindFor(kind)), nil
}

func kindFor(kind models.MediaKind) models.MediaKind {
	if kind == models.KindSeries {
		return models.KindSeries
	}
	return models.KindMovie
}

// Popular lists currently popular movies.
func (c *Client) Popular(ctx context.Context, page int) (models.SearchPage, error) {
	return c.moviesList(ctx, "movie/popular", page)
}

// TopRated lists top-rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (models.SearchPage, error) {
	return c.moviesList(ctx, "movie/top_rated", page)
}

func (c *Client) moviesList(ctx context.Context, path string, page int) (models.SearchPage, error) {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	var raw resultsPage
	if err := c.get(ctx, path, params, &raw); err != nil {
		return models.SearchPage{}, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return raw.toSearchPage(models.KindMovie), nil
}

type movieDetailResult struct {
	titleResult
	Runtime    int            `json:"runtime"`
	Tagline    string         `json:"tagline"`
	Genres     []models.Genre `json:"genres"`
	Collection *models.CollectionRef `json:"belongs_to_collection"`
}

// MovieDetails fetches one movie with full genre detail.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*models.MovieDetail, error) {
	var raw movieDetailResult
	if err := c.get(ctx, fmt.Sprintf("movie/%d", id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	detail := &models.MovieDetail{
		CatalogItem: raw.toCatalogItem(models.KindMovie),
		Runtime:     raw.Runtime,
		Tagline:     raw.Tagline,
		Collection:  raw.Collection,
	}
	detail.Genres = raw.Genres
	return detail, nil
}

type seriesDetailResult struct {
	titleResult
	NumberOfSeasons  int             `json:"number_of_seasons"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	Status           string          `json:"status"`
	Genres           []models.Genre  `json:"genres"`
	NextEpisodeToAir *models.Episode `json:"next_episode_to_air"`
	Seasons          []models.SeasonSummary `json:"seasons"`
	Networks         []struct {
		Name string `json:"name"`
	} `json:"networks"`
}

// SeriesDetails fetches one series, including its next scheduled episode
// (nil when the series has none).
func (c *Client) SeriesDetails(ctx context.Context, id int64) (*models.SeriesDetail, error) {
	var raw seriesDetailResult
	if err := c.get(ctx, fmt.Sprintf("tv/%d", id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get series %d: %w", id, err)
	}

	raw.MediaType = "tv"
	detail := &models.SeriesDetail{
		CatalogItem:      raw.toCatalogItem(models.KindSeries),
		NumberOfSeasons:  raw.NumberOfSeasons,
		NumberOfEpisodes: raw.NumberOfEpisodes,
		Status:           raw.Status,
		NextEpisodeToAir: raw.NextEpisodeToAir,
		Seasons:          raw.Seasons,
	}
	detail.Genres = raw.Genres
	for _, n := range raw.Networks {
		detail.Networks = append(detail.Networks, n.Name)
	}
	return detail, nil
}

// SeasonDetails fetches one season of a series with its episode list.
func (c *Client) SeasonDetails(ctx context.Context, seriesID int64, seasonNumber int) (*models.SeasonDetail, error) {
	var detail models.SeasonDetail
	path := fmt.Sprintf("tv/%d/season/%d", seriesID, seasonNumber)
	if err := c.get(ctx, path, nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get season %d of series %d: %w", seasonNumber, seriesID, err)
	}
	return &detail, nil
}

// PersonDetails fetches one person record.
func (c *Client) PersonDetails(ctx context.Context, id int64) (*models.Person, error) {
	var person models.Person
	if err := c.get(ctx, fmt.Sprintf("person/%d", id), nil, &person); err != nil {
		return nil, fmt.Errorf("failed to get person %d: %w", id, err)
	}
	return &person, nil
}

// PersonMovieCredits lists the movies a person is credited on.
func (c *Client) PersonMovieCredits(ctx context.Context, id int64) ([]models.CatalogItem, error) {
	var raw struct {
		Cast []titleResult `json:"cast"`
	}
	if err := c.get(ctx, fmt.Sprintf("person/%d/movie_credits", id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get credits for person %d: %w", id, err)
	}

	items := make([]models.CatalogItem, 0, len(raw.Cast))
	for _, r := range raw.Cast {
		items = append(items, r.toCatalogItem(models.KindMovie))
	}
	return items, nil
}

// Credits fetches the cast and crew of a movie or series.
func (c *Client) Credits(ctx context.Context, kind models.MediaKind, id int64) (*models.Credits, error) {
	var credits models.Credits
	path := fmt.Sprintf("%s/%d/credits", kindPath(kind), id)
	if err := c.get(ctx, path, nil, &credits); err != nil {
		return nil, fmt.Errorf("failed to get credits for %s %d: %w", kind, id, err)
	}
	return &credits, nil
}

// Videos fetches the trailers and clips of a movie or series.
func (c *Client) Videos(ctx context.Context, kind models.MediaKind, id int64) ([]models.Video, error) {
	var raw struct {
		Results []models.Video `json:"results"`
	}
	path := fmt.Sprintf("%s/%d/videos", kindPath(kind), id)
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get videos for %s %d: %w", kind, id, err)
	}
	return raw.Results, nil
}

// Recommendations lists titles the provider recommends alongside one title.
func (c *Client) Recommendations(ctx context.Context, kind models.MediaKind, id int64) ([]models.CatalogItem, error) {
	var raw resultsPage
	path := fmt.Sprintf("%s/%d/recommendations", kindPath(kind), id)
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get recommendations for %s %d: %w", kind, id, err)
	}
	return raw.toSearchPage(kindFor(kind)).Results, nil
}

// Reviews lists user reviews of a movie.
func (c *Client) Reviews(ctx context.Context, id int64) ([]models.Review, error) {
	var raw struct {
		Results []models.Review `json:"results"`
	}
	if err := c.get(ctx, fmt.Sprintf("movie/%d/reviews", id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get reviews for movie %d: %w", id, err)
	}
	return raw.Results, nil
}

// WatchProviders returns per-region availability for a movie or series.
func (c *Client) WatchProviders(ctx context.Context, kind models.MediaKind, id int64) (map[string]models.ProviderAvailability, error) {
	var raw struct {
		Results map[string]models.ProviderAvailability `json:"results"`
	}
	path := fmt.Sprintf("%s/%d/watch/providers", kindPath(kind), id)
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get watch providers for %s %d: %w", kind, id, err)
	}
	return raw.Results, nil
}

// Genres lists the genre vocabulary for one media kind.
func (c *Client) Genres(ctx context.Context, kind models.MediaKind) ([]models.Genre, error) {
	var raw struct {
		Genres []models.Genre `json:"genres"`
	}
	if err := c.get(ctx, "genre/"+kindPath(kind)+"/list", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get %s genres: %w", kind, err)
	}
	return raw.Genres, nil
}

type collectionResult struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Overview string        `json:"overview"`
	Parts    []titleResult `json:"parts"`
}

// CollectionDetails fetches a movie collection and its member movies.
func (c *Client) CollectionDetails(ctx context.Context, id int64) (*models.Collection, error) {
	var raw collectionResult
	if err := c.get(ctx, fmt.Sprintf("collection/%d", id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get collection %d: %w", id, err)
	}

	collection := &models.Collection{
		ID:       raw.ID,
		Name:     raw.Name,
		Overview: raw.Overview,
		Parts:    make([]models.CatalogItem, 0, len(raw.Parts)),
	}
	for _, part := range raw.Parts {
		collection.Parts = append(collection.Parts, part.toCatalogItem(models.KindMovie))
	}
	return collection, nil
}
