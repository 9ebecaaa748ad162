// Package module wires the catalog into the API using modkit
package module

import (
	"net/http"

	modkit "cinechat/internal/modkit"
	"cinechat/internal/modkit/httpkit"
	str "cinechat/internal/platform/strings"
	cataloghttp "cinechat/internal/services/catalog/http"
	catalogsvc "cinechat/internal/services/catalog/service"
	"cinechat/internal/services/catalog/omdb"
	"cinechat/internal/services/catalog/tmdb"
)

// Module implements the catalog module
// It owns both the /movies and /people route groups
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc catalogsvc.Service
}

// New constructs the catalog module from config-driven provider options
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog"), modkit.WithPrefix("/movies")}, opts...)...)

	o := overrides
	if o.TMDBKey == "" {
		o = FromConfig(deps.Cfg)
	}

	svc := catalogsvc.New(
		tmdb.New(tmdb.Config{APIKey: o.TMDBKey, BaseURL: o.TMDBBaseURL, Timeout: o.HTTPTimeout}),
		omdb.New(omdb.Config{APIKey: o.OMDBKey, BaseURL: o.OMDBBaseURL, Timeout: o.HTTPTimeout}),
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Catalog: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cataloghttp.RegisterMovies(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts /movies and the sibling /people group
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
	r.Route("/people", func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		cataloghttp.RegisterPeople(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the primary route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
