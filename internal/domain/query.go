package domain

// SortKey orders content listings. Unrecognized keys fall back to SortVotes.
type SortKey string

const (
	SortVotes      SortKey = "votes"
	SortNewest     SortKey = "newest"
	SortName       SortKey = "name"
	SortRanking    SortKey = "ranking"    // players only
	SortDifficulty SortKey = "difficulty" // courses only
)

// Filters are kind-specific equality filters; zero values mean "no filter".
type Filters struct {
	Brand          string // clubs
	ClubType       string // clubs
	Country        string // players
	IsPublic       *bool  // courses
	HasHostedMajor *bool  // courses
}

type ListQuery struct {
	Kind    Kind
	Filters Filters
	Sort    SortKey
	Page    int
	PerPage int
}

const DefaultPerPage = 12

type Page struct {
	Items      []Item
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// FilterOptions holds the distinct attribute values offered to listing pages.
type FilterOptions struct {
	Brands    []string
	ClubTypes []string
	Countries []string
}
