package models

// CatalogItem is a snapshot of a movie or series record from the catalog
// provider. Items saved to favorites or the watchlist are persisted verbatim
// at add time and never mutated in place.
type CatalogItem struct {
	ID           int64     `json:"id"`
	Kind         MediaKind `json:"kind"`
	Title        string    `json:"title"`
	ReleaseDate  string    `json:"release_date,omitempty"` // YYYY-MM-DD
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	VoteAverage  float64   `json:"vote_average,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	GenreIDs     []int64   `json:"genre_ids,omitempty"`
	// Genres is populated only on detail fetches; list endpoints carry
	// GenreIDs. The profile genre histogram uses Genres exclusively.
	Genres []Genre `json:"genres,omitempty"`
}

// Genre is a catalog genre reference.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Episode is a single episode of a series season.
type Episode struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date,omitempty"` // YYYY-MM-DD
	Overview      string `json:"overview,omitempty"`
	StillPath     string `json:"still_path,omitempty"`
	Runtime       int    `json:"runtime,omitempty"`
}

// SeasonSummary is the per-season entry embedded in a series detail.
type SeasonSummary struct {
	ID           int64  `json:"id"`
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
}

// SeasonDetail is a full season with its episode list.
type SeasonDetail struct {
	ID           int64     `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview,omitempty"`
	AirDate      string    `json:"air_date,omitempty"`
	Episodes     []Episode `json:"episodes"`
}

// MovieDetail extends a movie CatalogItem with detail-only fields.
type MovieDetail struct {
	CatalogItem
	Runtime    int            `json:"runtime,omitempty"`
	Tagline    string         `json:"tagline,omitempty"`
	Collection *CollectionRef `json:"belongs_to_collection,omitempty"`
}

// SeriesDetail extends a series CatalogItem with detail-only fields,
// including the next episode scheduled to air (nil when none is scheduled).
type SeriesDetail struct {
	CatalogItem
	NumberOfSeasons  int             `json:"number_of_seasons"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	Status           string          `json:"status,omitempty"`
	Networks         []string        `json:"networks,omitempty"`
	NextEpisodeToAir *Episode        `json:"next_episode_to_air,omitempty"`
	Seasons          []SeasonSummary `json:"seasons,omitempty"`
}

// CollectionRef is the lightweight collection pointer on a movie detail.
type CollectionRef struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path,omitempty"`
}

// Collection is a full movie collection with its member movies.
type Collection struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Overview string        `json:"overview,omitempty"`
	Parts    []CatalogItem `json:"parts"`
}

// Person is a catalog person record (actor, director, ...).
type Person struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Biography    string `json:"biography,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	ProfilePath  string `json:"profile_path,omitempty"`
	Department   string `json:"known_for_department,omitempty"`
}

// CastMember is a cast credit on a movie or series.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// CrewMember is a crew credit on a movie or series.
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job,omitempty"`
	Department  string `json:"department,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Credits groups the cast and crew of a title.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer/teaser/clip reference hosted by an external site.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Review is a user review attached to a title.
type Review struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
}

// Provider is a single streaming/rental provider.
type Provider struct {
	ID       int64  `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// ProviderAvailability lists where a title can be watched in one region.
type ProviderAvailability struct {
	Link     string     `json:"link,omitempty"`
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
}

// SearchPage is one page of catalog search/discover results.
type SearchPage struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}
