// @title         CineChat API
// @version       0.1.0
// @description   Conversational movie discovery endpoints

package main

import (
	"context"

	"github.com/joho/godotenv"

	"cinechat/internal/platform/config"
	"cinechat/internal/platform/logger"
	phttp "cinechat/internal/platform/net/http"
	"cinechat/internal/platform/store"

	"cinechat/internal/services/api"
)

func main() {
	// local development convenience; missing .env is fine
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// the turn archive is optional; without a DBURL the API runs memory-only
	var st *store.Store
	if dburl := pgCfg.MayString("DBURL", ""); dburl != "" {
		s, err := store.Open(
			context.Background(),
			store.Config{
				PG: store.PGConfig{
					Enabled:     true,
					URL:         dburl,
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		st = s
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	} else {
		l.Info().Msg("no SERVICE_PGSQL_DBURL set, turn archive disabled")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
