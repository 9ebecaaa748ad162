package module

import (
	"cinechat/internal/services/catalog/domain"
)

// Ports exposes the catalog capability to other modules
type Ports struct {
	Catalog domain.CatalogPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
