// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinechat/internal/modkit/httpkit"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/services/catalog/domain"
	svc "cinechat/internal/services/catalog/service"
)

// RegisterMovies mounts the movie endpoints on the given router
func RegisterMovies(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[SearchInput](r, "/search", h.search)
	httpkit.PostJSON[RecommendationInput](r, "/recommendations", h.recommendations)
	httpkit.PostJSON[TriviaInput](r, "/trivia", h.trivia)
	httpkit.Get(r, "/{id}", h.details)
}

// RegisterPeople mounts the people endpoints on the given router
func RegisterPeople(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[PersonSearchInput](r, "/search", h.person)
}

type handlers struct{ svc svc.Service }

// SearchInput is a title search query
type SearchInput struct {
	Query string `json:"query" validate:"required,min=1" example:"inception"`
	Year  int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2099" example:"2010"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=20" example:"5"`
}

// SearchOutput lists the matches for a query
type SearchOutput struct {
	Movies []domain.Movie `json:"movies"`
	Total  int            `json:"total" example:"3"`
	Query  string         `json:"query" example:"inception"`
}

// RecommendationInput selects a recommendation strategy
// movie_id wins over genre; with neither the popular default applies
type RecommendationInput struct {
	Genre   string `json:"genre,omitempty" example:"sci-fi"`
	Year    int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2099" example:"2023"`
	MovieID int64  `json:"movie_id,omitempty" example:"27205"`
	Limit   int    `json:"limit,omitempty" validate:"omitempty,min=1,max=20" example:"5"`
}

// RecommendationCriteria echoes the request parameters
type RecommendationCriteria struct {
	Genre   string `json:"genre,omitempty"`
	Year    int    `json:"year,omitempty"`
	MovieID int64  `json:"movie_id,omitempty"`
}

// RecommendationOutput lists recommended movies
type RecommendationOutput struct {
	Recommendations []domain.Movie         `json:"recommendations"`
	Total           int                    `json:"total" example:"5"`
	Criteria        RecommendationCriteria `json:"criteria"`
}

// TriviaInput names a movie by id or title
type TriviaInput struct {
	MovieID    int64  `json:"movie_id,omitempty" example:"27205"`
	MovieTitle string `json:"movie_title,omitempty" example:"Inception"`
}

// TriviaMovieRef identifies the movie the facts are about
type TriviaMovieRef struct {
	ID    int64  `json:"id" example:"27205"`
	Title string `json:"title" example:"Inception"`
	Year  string `json:"year" example:"2010"`
}

// TriviaOutput lists synthesized facts about a movie
type TriviaOutput struct {
	Trivia []string       `json:"trivia"`
	Movie  TriviaMovieRef `json:"movie"`
}

// PersonSearchInput is a person lookup by name
type PersonSearchInput struct {
	Name string `json:"name" validate:"required,min=1" example:"Tom Hanks"`
}

// MovieOutput wraps a single movie record
type MovieOutput struct {
	Movie *domain.MovieDetails `json:"movie"`
}

// PersonOutput wraps a single person record
type PersonOutput struct {
	Person *domain.Person `json:"person"`
}

// @Summary Search movies by title
// @Tags Movies
// @Accept json
// @Produce json
// @Param payload body SearchInput true "Query"
// @Success 200 {object} SearchOutput "ok"
// @Router /movies/search [post]
func (h *handlers) search(r *stdhttp.Request, in SearchInput) (any, error) {
	if in.Query == "" {
		return nil, perr.Validationf("query is required")
	}
	movies, err := h.svc.SearchMovies(r.Context(), in.Query, in.Year, in.Limit)
	if err != nil {
		return nil, err
	}
	return SearchOutput{Movies: movies, Total: len(movies), Query: in.Query}, nil
}

// @Summary Movie details by id
// @Tags Movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} MovieOutput "ok"
// @Router /movies/{id} [get]
func (h *handlers) details(r *stdhttp.Request) (any, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, perr.Validationf("movie id must be an integer")
	}
	movie, err := h.svc.MovieDetails(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return MovieOutput{Movie: movie}, nil
}

// @Summary Movie recommendations by movie or genre
// @Tags Movies
// @Accept json
// @Produce json
// @Param payload body RecommendationInput true "Criteria"
// @Success 200 {object} RecommendationOutput "ok"
// @Router /movies/recommendations [post]
func (h *handlers) recommendations(r *stdhttp.Request, in RecommendationInput) (any, error) {
	var (
		movies []domain.Movie
		err    error
	)
	switch {
	case in.MovieID != 0:
		movies, err = h.svc.MovieRecommendations(r.Context(), in.MovieID, in.Limit)
	case in.Genre != "":
		var years *domain.YearRange
		if in.Year != 0 {
			years = &domain.YearRange{From: in.Year - 2, To: in.Year + 2}
		}
		movies, err = h.svc.GenreRecommendations(r.Context(), in.Genre, years, in.Limit)
	default:
		// popular fallback when no criteria were given
		movies, err = h.svc.GenreRecommendations(r.Context(), "action", nil, in.Limit)
	}
	if err != nil {
		return nil, err
	}
	return RecommendationOutput{
		Recommendations: movies,
		Total:           len(movies),
		Criteria:        RecommendationCriteria{Genre: in.Genre, Year: in.Year, MovieID: in.MovieID},
	}, nil
}

// @Summary Movie trivia by id or title
// @Tags Movies
// @Accept json
// @Produce json
// @Param payload body TriviaInput true "Movie reference"
// @Success 200 {object} TriviaOutput "ok"
// @Router /movies/trivia [post]
func (h *handlers) trivia(r *stdhttp.Request, in TriviaInput) (any, error) {
	id := in.MovieID
	if id == 0 && in.MovieTitle != "" {
		movies, err := h.svc.SearchMovies(r.Context(), in.MovieTitle, 0, 1)
		if err != nil {
			return nil, err
		}
		if len(movies) > 0 {
			id = movies[0].ID
		}
	}
	if id == 0 {
		return nil, perr.Validationf("movie_id or movie_title is required")
	}

	facts, err := h.svc.MovieTrivia(r.Context(), id)
	if err != nil {
		return nil, err
	}
	ref := TriviaMovieRef{ID: id, Title: "Unknown", Year: "Unknown"}
	if movie, derr := h.svc.MovieDetails(r.Context(), id); derr == nil {
		ref.Title, ref.Year = movie.Title, movie.Year
	}
	return TriviaOutput{Trivia: facts, Movie: ref}, nil
}

// @Summary Search people by name
// @Tags People
// @Accept json
// @Produce json
// @Param payload body PersonSearchInput true "Name"
// @Success 200 {object} PersonOutput "ok"
// @Router /people/search [post]
func (h *handlers) person(r *stdhttp.Request, in PersonSearchInput) (any, error) {
	if in.Name == "" {
		return nil, perr.Validationf("name is required")
	}
	person, err := h.svc.SearchPerson(r.Context(), in.Name)
	if err != nil {
		return nil, err
	}
	return PersonOutput{Person: person}, nil
}
