package module

import (
	"cinechat/internal/services/convo/domain"
)

// Ports exposes the conversation memory and archive to other modules
type Ports struct {
	Store   domain.StorePort
	Archive domain.ArchivePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
