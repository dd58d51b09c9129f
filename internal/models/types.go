package models

// MediaKind is the discriminator tag carried by every catalog record. It is
// assigned once, when a record enters the system from the catalog provider,
// and is never re-inferred from field shapes downstream.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
	// KindPerson appears only in multi-search results and is filtered out
	// everywhere a movie/series record is expected.
	KindPerson MediaKind = "person"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
