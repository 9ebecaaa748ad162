package module

import (
	catalogdomain "cinechat/internal/services/catalog/domain"
	"cinechat/internal/services/chat/domain"
	convodomain "cinechat/internal/services/convo/domain"
)

// Deps are the cross module ports the chat module consumes
// injected by the API composition root via modkit.WithPorts
type Deps struct {
	Catalog catalogdomain.CatalogPort
	Store   convodomain.StorePort
	Archive convodomain.ArchivePort
}

// Ports exposes the chat capability to other modules
type Ports struct {
	Chat domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
