// Package module wires moderation into the API using modkit
package module

import (
	"net/http"

	modkit "safetymapper/internal/modkit"
	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/platform/metrics"
	str "safetymapper/internal/platform/strings"
	"safetymapper/internal/services/moderation/classifier"
	modhttp "safetymapper/internal/services/moderation/http"
	"safetymapper/internal/services/moderation/repo"
	modsvc "safetymapper/internal/services/moderation/service"
)

// Module implements the moderation module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *modsvc.Svc
}

// New constructs the moderation module. The audit sink follows the
// ClickHouse dep: present means recorded, absent means discarded
func New(deps modkit.Deps, cfg modsvc.Config, cls classifier.Classifier, met *metrics.Metrics, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("moderation"),
		modkit.WithPrefix("/moderation"),
	}, opts...)...)

	var audit repo.Recorder = repo.Nop{}
	if deps.CH != nil {
		audit = repo.NewCH(deps.CH)
	}
	svc := modsvc.New(deps, cfg, cls, audit, met)

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
		modhttp.Register(r, svc)
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
