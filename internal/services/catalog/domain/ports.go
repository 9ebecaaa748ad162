package domain

import "context"

// CatalogPort is consumed by handlers and by the chat module
// Lookups that find nothing return empty slices or ErrNotFound rather than
// partial data; hard provider failures come back as upstream errors
type CatalogPort interface {
	// SearchMovies finds up to limit movies by title, optionally pinned to a year
	SearchMovies(ctx context.Context, query string, year int, limit int) ([]Movie, error)
	// MovieDetails returns the full record for one movie
	MovieDetails(ctx context.Context, id int64) (*MovieDetails, error)
	// MovieRecommendations lists movies similar to the given one
	MovieRecommendations(ctx context.Context, id int64, limit int) ([]Movie, error)
	// GenreRecommendations lists popular movies for a genre, optionally bounded by years
	GenreRecommendations(ctx context.Context, genre string, years *YearRange, limit int) ([]Movie, error)
	// SearchPerson resolves a name to the best matching person profile
	SearchPerson(ctx context.Context, name string) (*Person, error)
	// MovieTrivia synthesizes up to three facts from a movie's production data
	MovieTrivia(ctx context.Context, id int64) ([]string, error)
}
