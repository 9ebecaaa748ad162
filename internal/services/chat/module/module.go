// Package module wires the chat surface into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "cinechat/internal/modkit"
	"cinechat/internal/modkit/httpkit"
	str "cinechat/internal/platform/strings"
	chathttp "cinechat/internal/services/chat/http"
	chatsvc "cinechat/internal/services/chat/service"
)

// Module implements the chat module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *chatsvc.Svc
}

// New constructs the chat module
// The composition root must inject Deps via modkit.WithPorts; the module
// panics without them since chat is useless without catalog and memory
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("chat"), modkit.WithPrefix("/chat")}, opts...)...)

	wired, ok := b.Ports.(Deps)
	if !ok {
		panic("chat module requires catalog and convo ports")
	}

	svc := chatsvc.New(wired.Catalog, wired.Store, wired.Archive, time.Now().UnixNano())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Chat: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chathttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
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
