package module

import (
	"safetymapper/internal/services/resources/domain"
)

// Ports are the cross-module surfaces resources exposes
type Ports struct {
	Service domain.ServicePort
	Query   domain.QueryPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
