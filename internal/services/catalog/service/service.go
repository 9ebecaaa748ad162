// Package service contains catalog workflows with TTL caching over the providers
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	perr "cinechat/internal/platform/errors"
	"cinechat/internal/platform/logger"
	"cinechat/internal/services/catalog/domain"
	"cinechat/internal/services/catalog/omdb"
	"cinechat/internal/services/catalog/tmdb"
)

// Service defines the catalog service contract
type Service interface {
	domain.CatalogPort
}

// imageBase prefixes provider poster and profile paths
const imageBase = "https://image.tmdb.org/t/p/w500"

// Cache windows; identical lookups inside a window return the cached value
const (
	searchTTL = 30 * time.Minute
	movieTTL  = time.Hour
	personTTL = time.Hour
	sweepTick = 10 * time.Minute
)

// genreIDs maps spoken genre names to provider genre ids
var genreIDs = map[string]int64{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"sci-fi":          878,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

// Svc implements the catalog service
type Svc struct {
	tmdb *tmdb.Client
	omdb *omdb.Client

	searchCache *gocache.Cache // title searches
	movieCache  *gocache.Cache // details and recommendation lists
	personCache *gocache.Cache // person profiles

	log *logger.Logger
}

// New constructs a catalog service over the two provider clients
func New(t *tmdb.Client, o *omdb.Client) *Svc {
	if t == nil {
		panic("catalog.Service requires a tmdb client")
	}
	if o == nil {
		panic("catalog.Service requires an omdb client")
	}
	return &Svc{
		tmdb:        t,
		omdb:        o,
		searchCache: gocache.New(searchTTL, sweepTick),
		movieCache:  gocache.New(movieTTL, sweepTick),
		personCache: gocache.New(personTTL, sweepTick),
		log:         logger.Named("catalog"),
	}
}

// SearchMovies finds up to limit movies by title
func (s *Svc) SearchMovies(ctx context.Context, query string, year int, limit int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("search|%s|%d|%d", strings.ToLower(query), year, limit)
	if v, ok := s.searchCache.Get(key); ok {
		return v.([]domain.Movie), nil
	}

	results, err := s.tmdb.SearchMovies(ctx, query, year)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		m := cardOf(r)
		// search cards carry genre names, fetched per movie and tolerated on failure
		if detail, derr := s.tmdb.MovieByID(ctx, r.ID); derr == nil {
			m.Genres = genreNames(detail.Genres)
		}
		movies = append(movies, m)
	}

	s.searchCache.Set(key, movies, gocache.DefaultExpiration)
	return movies, nil
}

// MovieDetails returns the full record for one movie, enriched with
// secondary-provider ratings when available
func (s *Svc) MovieDetails(ctx context.Context, id int64) (*domain.MovieDetails, error) {
	key := fmt.Sprintf("movie|%d", id)
	if v, ok := s.movieCache.Get(key); ok {
		return v.(*domain.MovieDetails), nil
	}

	detail, err := s.tmdb.MovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// credits and extra ratings are decoration; failures leave the fields empty
	cast, director := []domain.CastMember{}, "Unknown"
	if credits, cerr := s.tmdb.MovieCredits(ctx, id); cerr == nil {
		for _, c := range credits.Cast {
			cast = append(cast, domain.CastMember{Name: c.Name, Character: c.Character})
			if len(cast) == 5 {
				break
			}
		}
		for _, c := range credits.Crew {
			if c.Job == "Director" {
				director = c.Name
				break
			}
		}
	}

	out := &domain.MovieDetails{
		ID:         detail.ID,
		Title:      detail.Title,
		Year:       detail.Year(),
		Overview:   detail.Overview,
		Runtime:    detail.Runtime,
		RatingTMDB: detail.VoteAverage,
		Genres:     genreNames(detail.Genres),
		Cast:       cast,
		Director:   director,
		PosterURL:  posterURL(detail.PosterPath),
		Budget:     detail.Budget,
		Revenue:    detail.Revenue,
	}
	for _, c := range detail.ProductionCompanies {
		out.ProductionCompanies = append(out.ProductionCompanies, c.Name)
	}
	if ratings := s.omdb.RatingsByTitle(ctx, detail.Title, detail.Year()); ratings != nil {
		out.RatingIMDB = ratings.IMDB
		out.RatingRT = ratings.RottenTomatoes
	}

	s.movieCache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

// MovieRecommendations lists up to limit movies similar to the given one
func (s *Svc) MovieRecommendations(ctx context.Context, id int64, limit int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("recs|%d|%d", id, limit)
	if v, ok := s.movieCache.Get(key); ok {
		return v.([]domain.Movie), nil
	}

	results, err := s.tmdb.Recommendations(ctx, id)
	if err != nil {
		return nil, err
	}
	movies := cards(results, limit)

	s.movieCache.Set(key, movies, gocache.DefaultExpiration)
	return movies, nil
}

// GenreRecommendations lists popular movies for a spoken genre name
// An unrecognized genre yields an empty list, not an error
func (s *Svc) GenreRecommendations(ctx context.Context, genre string, years *domain.YearRange, limit int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 10
	}
	genreID, ok := genreIDs[strings.ToLower(genre)]
	if !ok {
		return []domain.Movie{}, nil
	}

	from, to := 0, 0
	if years != nil {
		from, to = years.From, years.To
	}
	key := fmt.Sprintf("genre|%d|%d|%d|%d", genreID, from, to, limit)
	if v, ok := s.movieCache.Get(key); ok {
		return v.([]domain.Movie), nil
	}

	results, err := s.tmdb.DiscoverByGenre(ctx, genreID, from, to)
	if err != nil {
		return nil, err
	}
	movies := cards(results, limit)

	s.movieCache.Set(key, movies, gocache.DefaultExpiration)
	return movies, nil
}

// SearchPerson resolves a name to the best matching person profile
func (s *Svc) SearchPerson(ctx context.Context, name string) (*domain.Person, error) {
	key := "person|" + strings.ToLower(name)
	if v, ok := s.personCache.Get(key); ok {
		return v.(*domain.Person), nil
	}

	results, err := s.tmdb.SearchPerson(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, perr.NotFoundf("no person matching %q", name)
	}
	best := results[0]

	out := &domain.Person{
		ID:             best.ID,
		Name:           best.Name,
		KnownFor:       best.KnownFor,
		ProfileURL:     posterURL(best.ProfilePath),
		PopularMovies:  []domain.CreditRef{},
		DirectedMovies: []domain.CreditRef{},
	}
	if detail, derr := s.tmdb.PersonByID(ctx, best.ID); derr == nil {
		out.Biography = detail.Biography
		out.Birthday = detail.Birthday
		out.PlaceOfBirth = detail.PlaceOfBirth
	}
	if credits, cerr := s.tmdb.PersonMovieCredits(ctx, best.ID); cerr == nil {
		for _, c := range credits.Cast {
			out.PopularMovies = append(out.PopularMovies, domain.CreditRef{
				Title: c.Title, Year: yearOf(c.ReleaseDate), Character: c.Character,
			})
			if len(out.PopularMovies) == 5 {
				break
			}
		}
		for _, c := range credits.Crew {
			if c.Job != "Director" {
				continue
			}
			out.DirectedMovies = append(out.DirectedMovies, domain.CreditRef{
				Title: c.Title, Year: yearOf(c.ReleaseDate),
			})
			if len(out.DirectedMovies) == 5 {
				break
			}
		}
	}

	s.personCache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

// MovieTrivia synthesizes up to three facts from a movie's production data
func (s *Svc) MovieTrivia(ctx context.Context, id int64) ([]string, error) {
	movie, err := s.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	var facts []string
	if movie.Budget > 0 && movie.Revenue > 0 {
		if profit := movie.Revenue - movie.Budget; profit > 0 {
			facts = append(facts, fmt.Sprintf(
				"The movie had a budget of $%s and earned $%s, making a profit of $%s.",
				groupDigits(movie.Budget), groupDigits(movie.Revenue), groupDigits(profit),
			))
		}
	}
	if movie.Runtime > 0 {
		facts = append(facts, fmt.Sprintf("The movie has a runtime of %d minutes.", movie.Runtime))
	}
	if len(movie.ProductionCompanies) > 0 {
		names := movie.ProductionCompanies
		if len(names) > 2 {
			names = names[:2]
		}
		facts = append(facts, fmt.Sprintf("It was produced by %s.", strings.Join(names, ", ")))
	}

	if len(facts) > 3 {
		facts = facts[:3]
	}
	return facts, nil
}

func cards(results []tmdb.MovieResult, limit int) []domain.Movie {
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		out = append(out, cardOf(r))
	}
	return out
}

func cardOf(r tmdb.MovieResult) domain.Movie {
	return domain.Movie{
		ID:        r.ID,
		Title:     r.Title,
		Year:      r.Year(),
		Overview:  r.Overview,
		Rating:    r.VoteAverage,
		PosterURL: posterURL(r.PosterPath),
	}
}

func genreNames(refs []tmdb.GenreRef) []string {
	out := make([]string, 0, len(refs))
	for _, g := range refs {
		out = append(out, g.Name)
	}
	return out
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBase + path
}

func yearOf(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return "Unknown"
}

// groupDigits renders n with thousands separators, eg 1234567 -> "1,234,567"
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
