// Package module wires safety resources into the API using modkit
package module

import (
	"net/http"

	modkit "safetymapper/internal/modkit"
	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/platform/metrics"
	str "safetymapper/internal/platform/strings"
	reshttp "safetymapper/internal/services/resources/http"
	ressvc "safetymapper/internal/services/resources/service"
)

// Module implements the resources module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *ressvc.Svc
}

// New constructs the resources module
func New(deps modkit.Deps, cfg ressvc.Config, met *metrics.Metrics, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("resources"),
		modkit.WithPrefix("/resources"),
	}, opts...)...)

	svc := ressvc.New(deps, cfg, met)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc, Query: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reshttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the concrete service for wiring the refresher in main
func (m *Module) Service() *ressvc.Svc { return m.svc }

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
