// Package tmdb is a thin REST client for the primary movie metadata provider
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "cinechat/internal/platform/errors"
	"cinechat/internal/platform/logger"
)

// DefaultBaseURL is the provider's v3 API root
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Config controls the client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the provider with a bounded shared http.Client
type Client struct {
	http *http.Client
	base string
	key  string
	log  *logger.Logger
}

// New constructs a Client; APIKey must be set
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		panic("tmdb.Client requires an api key")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		base: base,
		key:  cfg.APIKey,
		log:  logger.Named("tmdb"),
	}
}

// Wire types mirror the provider's JSON

// MovieResult is one row of a search, discover, or recommendations page
type MovieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

// Year returns the four digit release year or "Unknown"
func (m MovieResult) Year() string { return yearOf(m.ReleaseDate) }

type page struct {
	Results []MovieResult `json:"results"`
}

// GenreRef is an id/name pair on a movie record
type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CompanyRef is a production company on a movie record
type CompanyRef struct {
	Name string `json:"name"`
}

// MovieDetail is the full movie record
type MovieDetail struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	ReleaseDate         string       `json:"release_date"`
	Overview            string       `json:"overview"`
	Runtime             int          `json:"runtime"`
	VoteAverage         float64      `json:"vote_average"`
	PosterPath          string       `json:"poster_path"`
	Budget              int64        `json:"budget"`
	Revenue             int64        `json:"revenue"`
	Genres              []GenreRef   `json:"genres"`
	ProductionCompanies []CompanyRef `json:"production_companies"`
}

// Year returns the four digit release year or "Unknown"
func (m MovieDetail) Year() string { return yearOf(m.ReleaseDate) }

// CastEntry is one credited actor
type CastEntry struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// CrewEntry is one credited crew member
type CrewEntry struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds a movie's cast and crew
type Credits struct {
	Cast []CastEntry `json:"cast"`
	Crew []CrewEntry `json:"crew"`
}

// PersonResult is one row of a person search page
type PersonResult struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	KnownFor    string `json:"known_for_department"`
	ProfilePath string `json:"profile_path"`
}

type personPage struct {
	Results []PersonResult `json:"results"`
}

// PersonDetail is the full person record
type PersonDetail struct {
	Biography    string `json:"biography"`
	Birthday     string `json:"birthday"`
	PlaceOfBirth string `json:"place_of_birth"`
}

// PersonCastCredit is a movie the person acted in
type PersonCastCredit struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Character   string `json:"character"`
}

// PersonCrewCredit is a movie the person crewed on
type PersonCrewCredit struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Job         string `json:"job"`
}

// PersonCredits holds a person's movie credits
type PersonCredits struct {
	Cast []PersonCastCredit `json:"cast"`
	Crew []PersonCrewCredit `json:"crew"`
}

// SearchMovies queries search/movie; year 0 means unpinned
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]MovieResult, error) {
	q := url.Values{
		"query":         {query},
		"language":      {"en-US"},
		"page":          {"1"},
		"include_adult": {"false"},
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var out page
	if err := c.get(ctx, "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MovieByID fetches movie/{id}
func (c *Client) MovieByID(ctx context.Context, id int64) (*MovieDetail, error) {
	var out MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{"language": {"en-US"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieCredits fetches movie/{id}/credits
func (c *Client) MovieCredits(ctx context.Context, id int64) (*Credits, error) {
	var out Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommendations fetches movie/{id}/recommendations
func (c *Client) Recommendations(ctx context.Context, id int64) ([]MovieResult, error) {
	var out page
	q := url.Values{"language": {"en-US"}, "page": {"1"}}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/recommendations", id), q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// DiscoverByGenre fetches discover/movie for a genre id, most popular first
// fromYear/toYear of 0 leave the window unbounded on that side
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64, fromYear, toYear int) ([]MovieResult, error) {
	q := url.Values{
		"with_genres":    {strconv.FormatInt(genreID, 10)},
		"sort_by":        {"popularity.desc"},
		"language":       {"en-US"},
		"page":           {"1"},
		"vote_count.gte": {"100"}, // filters junk listings
	}
	if fromYear > 0 {
		q.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", fromYear))
	}
	if toYear > 0 {
		q.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", toYear))
	}
	var out page
	if err := c.get(ctx, "/discover/movie", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// SearchPerson queries search/person
func (c *Client) SearchPerson(ctx context.Context, name string) ([]PersonResult, error) {
	var out personPage
	if err := c.get(ctx, "/search/person", url.Values{"query": {name}, "language": {"en-US"}}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// PersonByID fetches person/{id}
func (c *Client) PersonByID(ctx context.Context, id int64) (*PersonDetail, error) {
	var out PersonDetail
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), url.Values{"language": {"en-US"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonMovieCredits fetches person/{id}/movie_credits
func (c *Client) PersonMovieCredits(ctx context.Context, id int64) (*PersonCredits, error) {
	var out PersonCredits
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", id), url.Values{"language": {"en-US"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "build tmdb request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "tmdb %s", path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return perr.NotFoundf("tmdb %s", path)
	case resp.StatusCode != http.StatusOK:
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("tmdb non-200")
		return perr.Upstreamf("tmdb %s returned %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "decode tmdb %s", path)
	}
	return nil
}

func yearOf(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return "Unknown"
}
