package module

import (
	"safetymapper/internal/services/routes/domain"
)

// Ports are the cross-module surfaces routes exposes
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
