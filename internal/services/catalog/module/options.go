package module

import (
	"time"

	"cinechat/internal/platform/config"
	"cinechat/internal/services/catalog/omdb"
	"cinechat/internal/services/catalog/tmdb"
)

// Options controls the catalog providers
type Options struct {
	TMDBKey     string
	TMDBBaseURL string
	OMDBKey     string
	OMDBBaseURL string
	HTTPTimeout time.Duration
}

// FromConfig reads with CATALOG_ prefix
// The primary provider key is required; the secondary one is optional and
// its absence only drops the extra ratings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CATALOG_")
	return Options{
		TMDBKey:     c.MustString("TMDB_API_KEY"),
		TMDBBaseURL: c.MayString("TMDB_BASE_URL", tmdb.DefaultBaseURL),
		OMDBKey:     c.MayString("OMDB_API_KEY", ""),
		OMDBBaseURL: c.MayString("OMDB_BASE_URL", omdb.DefaultBaseURL),
		HTTPTimeout: c.MayDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}
