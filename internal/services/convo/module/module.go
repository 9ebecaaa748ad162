// Package module wires the conversation store into the API using modkit
package module

import (
	"context"
	"net/http"
	"time"

	modkit "cinechat/internal/modkit"
	"cinechat/internal/modkit/httpkit"
	"cinechat/internal/platform/config"
	str "cinechat/internal/platform/strings"
	convohttp "cinechat/internal/services/convo/http"
	convorepo "cinechat/internal/services/convo/repo"
	convosvc "cinechat/internal/services/convo/service"
)

// Options controls conversation retention
type Options struct {
	// TTL evicts conversations idle for longer than this; zero keeps them forever
	TTL time.Duration
	// SweepInterval is how often the janitor looks for idle conversations
	SweepInterval time.Duration
}

// FromConfig reads with CONVO_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CONVO_")
	return Options{
		TTL:           c.MayDuration("TTL", 0),
		SweepInterval: c.MayDuration("SWEEP_INTERVAL", time.Minute),
	}
}

// Module implements the conversation module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	store    *convosvc.Store
	archiver *convosvc.Archiver
	janitor  Options
}

// New constructs the conversation module
// The archive activates only when deps.PG is wired
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("convo"), modkit.WithPrefix("/conversations")},
		opts...,
	)...)

	o := overrides
	if o.TTL == 0 && o.SweepInterval == 0 {
		o = FromConfig(deps.Cfg)
	}

	store := convosvc.NewStore(o.TTL)
	archiver := convosvc.NewArchiver(deps.PG, convorepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		store:     store,
		archiver:  archiver,
		janitor:   o,
	}
	m.ports = Ports{Store: store, Archive: archiver}

	external := b.Register
	m.register = func(r httpkit.Router) {
		convohttp.Register(r, store, archiver)
		if external != nil {
			external(r)
		}
	}
	return m
}

// StartJanitor launches idle eviction in the background; no-op when TTL is zero
func (m *Module) StartJanitor(ctx context.Context) {
	go m.store.RunJanitor(ctx, m.janitor.SweepInterval)
}

// MountRoutes mounts the module routes on the given router
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
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
