// Package omdb is a best-effort client for the secondary ratings provider
package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"cinechat/internal/platform/logger"
)

// DefaultBaseURL is the provider root
const DefaultBaseURL = "http://www.omdbapi.com"

// Config controls the client; an empty APIKey disables lookups entirely
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Ratings is the subset of the record the chat surface uses
type Ratings struct {
	IMDB           string
	RottenTomatoes string
}

// Client degrades to no-op when unconfigured so extra ratings never block a reply
type Client struct {
	http *http.Client
	base string
	key  string
	log  *logger.Logger
}

// New constructs a Client
func New(cfg Config) *Client {
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
		log:  logger.Named("omdb"),
	}
}

// Enabled reports whether an api key is configured
func (c *Client) Enabled() bool { return c.key != "" }

type record struct {
	Response   string `json:"Response"`
	IMDBRating string `json:"imdbRating"`
	Ratings    []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
}

// RatingsByTitle looks a movie up by exact title and year
// Any failure, including a disabled client, returns nil without error because
// these ratings are decoration on top of the primary record
func (c *Client) RatingsByTitle(ctx context.Context, title, year string) *Ratings {
	if !c.Enabled() || title == "" {
		return nil
	}

	q := url.Values{
		"apikey": {c.key},
		"t":      {title},
		"y":      {year},
		"plot":   {"short"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("title", title).Msg("omdb lookup failed")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var rec record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil || rec.Response != "True" {
		return nil
	}

	out := &Ratings{IMDB: rec.IMDBRating}
	for _, r := range rec.Ratings {
		if r.Source == "Rotten Tomatoes" {
			out.RottenTomatoes = r.Value
			break
		}
	}
	return out
}
