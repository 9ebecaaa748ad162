// Package api provides the HTTP API for the application
package api

import (
	"context"

	"cinechat/internal/platform/config"
	"cinechat/internal/platform/logger"
	phttp "cinechat/internal/platform/net/http"
	"cinechat/internal/platform/store"

	"cinechat/internal/modkit"
	"cinechat/internal/modkit/httpkit"
	"cinechat/internal/modkit/module"
	"cinechat/internal/modkit/swaggerkit"

	metamod "cinechat/internal/services/api/meta/module"
	catalogmod "cinechat/internal/services/catalog/module"
	chatmod "cinechat/internal/services/chat/module"
	convomod "cinechat/internal/services/convo/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules; PG stays nil when the archive is not configured
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// catalog and convo come up first so their ports can feed chat
	catalog := catalogmod.New(deps, catalogmod.Options{})
	convo := convomod.New(deps, convomod.Options{})
	convo.StartJanitor(context.Background())

	convoPorts := module.MustPortsOf[convomod.Ports](convo)

	chat := chatmod.New(deps, modkit.WithPorts(chatmod.Deps{
		Catalog: module.MustPortsOf[catalogmod.Ports](catalog).Catalog,
		Store:   convoPorts.Store,
		Archive: convoPorts.Archive,
	}))

	meta := metamod.New(deps, modkit.WithPorts(metamod.Wired{
		Convo: convoPorts.Store,
	}))

	mods := []module.Module{
		meta,
		catalog,
		convo,
		chat,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
