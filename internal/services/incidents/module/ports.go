package module

import (
	"safetymapper/internal/services/incidents/domain"
)

// Ports are the cross-module surfaces incidents exposes
type Ports struct {
	Service domain.ServicePort
	Query   domain.QueryPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
