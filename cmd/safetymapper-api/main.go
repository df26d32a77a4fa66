// @title         SafetyMapper API
// @version       0.1.0
// @description   Route risk assessment and content moderation endpoints

package main

import (
	"context"

	"safetymapper/internal/platform/config"
	"safetymapper/internal/platform/logger"
	phttp "safetymapper/internal/platform/net/http"
	"safetymapper/internal/platform/store"

	"safetymapper/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (SM_API_*)
	root := config.New()
	apiCfg := root.Prefix("SM_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "safetymapper",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:   chCfg.MayString("DBURL", "") != "",
				URL:       chCfg.MayString("DBURL", ""),
				ClientTag: "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads SM_API_PORT / SM_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	workers := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// snapshot refreshers stop with the server context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, run := range workers {
		go func(run func(context.Context) error) {
			if err := run(ctx); err != nil && ctx.Err() == nil {
				l.Error().Err(err).Msg("background worker stopped")
			}
		}(run)
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
