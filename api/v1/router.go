package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-chi/chi/v5/middleware"
  "github.com/prometheus/client_golang/prometheus/promhttp"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
)

func NewRouter(apiContext *common.ApiContext) http.Handler {
  r := chi.NewRouter()
  r.Use(middleware.RequestID)
  r.Use(middleware.RealIP)
  r.Use(middleware.Recoverer)
  r.Use(api.Logger)
  r.Use(api.Metrics)
  r.Use(api.CORS(common.GetEnvArray("CORS_ORIGINS")))

  r.Get("/healthz", Healthz)
  r.Handle("/metrics", promhttp.Handler())

  r.Route("/api", func(r chi.Router) {
    r.Use(api.RateLimit(common.GetEnvInt("RATE_LIMIT_REQUESTS")))
    r.Mount("/dashboard", NewDashboardRouter(apiContext))
    r.Mount("/cpms", NewCpmsRouter(apiContext))
    r.Mount("/payments", NewPaymentsRouter(apiContext))
    r.Mount("/posts", NewPostsRouter(apiContext))
    r.Mount("/creators", NewCreatorsRouter(apiContext))
    r.Mount("/cron", NewCronRouter(apiContext))
    r.Mount("/sync", NewSyncRouter(apiContext))
    r.Mount("/sync-debug", NewSyncDebugRouter(apiContext))
    r.Mount("/db-health", NewHealthRouter(apiContext))
    r.Mount("/auth", NewAuthRouter(apiContext))
  })

  return r
}
