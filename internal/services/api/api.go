// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"safetymapper/internal/platform/config"
	"safetymapper/internal/platform/logger"
	"safetymapper/internal/platform/metrics"
	phttp "safetymapper/internal/platform/net/http"
	"safetymapper/internal/platform/store"

	"safetymapper/internal/modkit"
	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/modkit/module"
	"safetymapper/internal/modkit/swaggerkit"

	metamod "safetymapper/internal/services/api/meta/module"
	incmod "safetymapper/internal/services/incidents/module"
	incsvc "safetymapper/internal/services/incidents/service"
	modmod "safetymapper/internal/services/moderation/module"
	modsvc "safetymapper/internal/services/moderation/service"
	resmod "safetymapper/internal/services/resources/module"
	ressvc "safetymapper/internal/services/resources/service"
	rtmod "safetymapper/internal/services/routes/module"
	rtsvc "safetymapper/internal/services/routes/service"

	"safetymapper/internal/services/moderation/classifier"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Workers are the background loops the caller must drive.
// Each blocks until its context is done
type Workers []func(ctx context.Context) error

// Mount mounts the API service onto the given router and returns the
// background workers that keep the snapshots fresh
func Mount(r phttp.Router, opt Options) Workers {
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	met := metrics.New("safetymapper")

	incidents := incmod.New(deps, incsvc.Config{
		RefreshEvery:  opt.Config.MayDuration("INCIDENT_REFRESH", 5*time.Minute),
		SeedWhenEmpty: opt.Config.MayBool("SEED_SAMPLE_DATA", false),
	}, met)
	resources := resmod.New(deps, ressvc.Config{
		RefreshEvery:  opt.Config.MayDuration("RESOURCE_REFRESH", 15*time.Minute),
		SeedWhenEmpty: opt.Config.MayBool("SEED_SAMPLE_DATA", false),
	}, met)

	incPorts := module.MustPortsOf[incmod.Ports](incidents)
	resPorts := module.MustPortsOf[resmod.Ports](resources)

	routes := rtmod.New(deps, rtsvc.Config{}, incPorts.Query, resPorts.Query, met)

	cls := classifier.NewHTTP(classifier.Config{
		URL:     opt.Config.MayString("CLASSIFIER_URL", ""),
		Timeout: opt.Config.MayDuration("CLASSIFIER_TIMEOUT", 0),
	})
	moderation := modmod.New(deps, modsvc.Config{}, cls, met)

	mods := []module.Module{
		metamod.New(deps),
		incidents,
		resources,
		routes,
		moderation,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics {
		r.Handle("/metrics", met.Handler())
	}

	return Workers{
		incidents.Service().Run,
		resources.Service().Run,
	}
}
