package models

// MovieSummary is the list-level view of a movie returned by discover.
type MovieSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   string   `json:"poster_url,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReleaseYear *int     `json:"release_year,omitempty"`
}

// MovieDetail is the full movie record shown in the detail view.
type MovieDetail struct {
	MovieSummary
	ReleaseDate string  `json:"release_date,omitempty"`
	Runtime     int     `json:"runtime,omitempty"`
	Genres      []Genre `json:"genres"`
	Tagline     string  `json:"tagline,omitempty"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieView is a movie as presented in a result list.
type MovieView struct {
	MovieSummary
	TrailerURL *string `json:"trailer_url"`
	IsFavorite bool    `json:"is_favorite"`
	Available  *bool   `json:"available,omitempty"`
}

// VideoRecord is one entry of a movie's video list.
type VideoRecord struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// DiscoverPage is one page of discover results.
type DiscoverPage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []MovieSummary `json:"results"`
}

// MovieDetailResponse bundles a movie's detail with its providers in a region.
type MovieDetailResponse struct {
	Detail     *MovieDetail `json:"detail"`
	Providers  []Provider   `json:"providers"`
	TrailerURL *string      `json:"trailer_url"`
	IsFavorite bool         `json:"is_favorite"`
}
