package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "cinechat/internal/platform/errors"
	phttp "cinechat/internal/platform/net/http"
	"cinechat/internal/services/catalog/domain"
)

// fakeCatalog serves canned results for transport tests
type fakeCatalog struct {
	movies  []domain.Movie
	details *domain.MovieDetails
	person  *domain.Person
	trivia  []string
}

func (f *fakeCatalog) SearchMovies(context.Context, string, int, int) ([]domain.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) MovieDetails(_ context.Context, id int64) (*domain.MovieDetails, error) {
	if f.details == nil {
		return nil, perr.NotFoundf("movie %d not found", id)
	}
	return f.details, nil
}

func (f *fakeCatalog) MovieRecommendations(context.Context, int64, int) ([]domain.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) GenreRecommendations(context.Context, string, *domain.YearRange, int) ([]domain.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) SearchPerson(_ context.Context, name string) (*domain.Person, error) {
	if f.person == nil {
		return nil, perr.NotFoundf("no person matching %q", name)
	}
	return f.person, nil
}

func (f *fakeCatalog) MovieTrivia(context.Context, int64) ([]string, error) {
	return f.trivia, nil
}

func newCatalogServer(t *testing.T, cat *fakeCatalog) *httptest.Server {
	t.Helper()
	r := phttp.AdaptChi(chi.NewMux())
	r.Route("/movies", func(rr phttp.Router) { RegisterMovies(rr, cat) })
	r.Route("/people", func(rr phttp.Router) { RegisterPeople(rr, cat) })
	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *stdhttp.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := stdhttp.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestSearchEndpoint(t *testing.T) {
	cat := &fakeCatalog{movies: []domain.Movie{{ID: 27205, Title: "Inception", Year: "2010", Rating: 8.4}}}
	srv := newCatalogServer(t, cat)

	resp := postJSON(t, srv.URL+"/movies/search", map[string]any{"query": "inception"})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data SearchOutput `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Total != 1 || env.Data.Movies[0].Title != "Inception" {
		t.Fatalf("output = %+v", env.Data)
	}
	if env.Data.Query != "inception" {
		t.Fatalf("query echo = %q", env.Data.Query)
	}
}

func TestSearchEndpointRejectsEmptyQuery(t *testing.T) {
	srv := newCatalogServer(t, &fakeCatalog{})

	resp := postJSON(t, srv.URL+"/movies/search", map[string]any{"query": ""})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDetailsEndpoint(t *testing.T) {
	cat := &fakeCatalog{details: &domain.MovieDetails{ID: 27205, Title: "Inception", Year: "2010"}}
	srv := newCatalogServer(t, cat)

	resp, err := stdhttp.Get(srv.URL + "/movies/27205")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data MovieOutput `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Movie.Title != "Inception" {
		t.Fatalf("movie = %+v", env.Data.Movie)
	}
}

func TestDetailsEndpointBadID(t *testing.T) {
	srv := newCatalogServer(t, &fakeCatalog{})

	resp, err := stdhttp.Get(srv.URL + "/movies/not-a-number")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDetailsEndpointMissing(t *testing.T) {
	srv := newCatalogServer(t, &fakeCatalog{})

	resp, err := stdhttp.Get(srv.URL + "/movies/999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRecommendationsEndpointEchoesCriteria(t *testing.T) {
	cat := &fakeCatalog{movies: []domain.Movie{{ID: 603, Title: "The Matrix"}}}
	srv := newCatalogServer(t, cat)

	resp := postJSON(t, srv.URL+"/movies/recommendations", map[string]any{"genre": "sci-fi", "year": 1999})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data RecommendationOutput `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Criteria.Genre != "sci-fi" || env.Data.Criteria.Year != 1999 {
		t.Fatalf("criteria = %+v", env.Data.Criteria)
	}
	if env.Data.Total != 1 {
		t.Fatalf("total = %d", env.Data.Total)
	}
}

func TestTriviaEndpointRequiresReference(t *testing.T) {
	srv := newCatalogServer(t, &fakeCatalog{})

	resp := postJSON(t, srv.URL+"/movies/trivia", map[string]any{})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTriviaEndpointByTitle(t *testing.T) {
	cat := &fakeCatalog{
		movies:  []domain.Movie{{ID: 27205, Title: "Inception", Year: "2010"}},
		details: &domain.MovieDetails{ID: 27205, Title: "Inception", Year: "2010"},
		trivia:  []string{"The movie has a runtime of 148 minutes."},
	}
	srv := newCatalogServer(t, cat)

	resp := postJSON(t, srv.URL+"/movies/trivia", map[string]any{"movie_title": "inception"})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data TriviaOutput `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data.Trivia) != 1 || env.Data.Movie.Title != "Inception" {
		t.Fatalf("output = %+v", env.Data)
	}
}

func TestPersonSearchEndpoint(t *testing.T) {
	cat := &fakeCatalog{person: &domain.Person{ID: 31, Name: "Tom Hanks"}}
	srv := newCatalogServer(t, cat)

	resp := postJSON(t, srv.URL+"/people/search", map[string]any{"name": "Tom Hanks"})
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data PersonOutput `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Person.Name != "Tom Hanks" {
		t.Fatalf("person = %+v", env.Data.Person)
	}
}
