// Package module wires route assessment into the API using modkit
package module

import (
	"net/http"

	modkit "safetymapper/internal/modkit"
	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/platform/metrics"
	str "safetymapper/internal/platform/strings"
	incdomain "safetymapper/internal/services/incidents/domain"
	resdomain "safetymapper/internal/services/resources/domain"
	rthttp "safetymapper/internal/services/routes/http"
	rtsvc "safetymapper/internal/services/routes/service"
)

// Module implements the routes module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *rtsvc.Svc
}

// New constructs the routes module over the incident and resource query ports
func New(deps modkit.Deps, cfg rtsvc.Config, inc incdomain.QueryPort, res resdomain.QueryPort, met *metrics.Metrics, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("routes"),
		modkit.WithPrefix("/routes"),
	}, opts...)...)

	svc := rtsvc.New(deps, cfg, inc, res, met)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rthttp.Register(r, svc)
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
