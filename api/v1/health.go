package v1

import (
  "net/http"
  "net/url"

  "github.com/go-chi/chi/v5"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
)

type HealthHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.HealthRepository
}

type EnvCheck struct {
  HasDbDriver bool `json:"hasDbDriver"`
  HasDbDsn    bool `json:"hasDbDsn"`
  HasRedis    bool `json:"hasRedis"`
  HasNats     bool `json:"hasNats"`
}

type DbHealthResponse struct {
  Ok       bool                          `json:"ok"`
  Error    string                        `json:"error,omitempty"`
  EnvCheck *EnvCheck                     `json:"envCheck"`
  DbHost   string                        `json:"dbHost"`
  Tables   []string                      `json:"tables"`
  Counts   map[string]*int64             `json:"counts"`
  Samples  []*repositories.CreatorSample `json:"samples"`
}

func NewHealthRouter(apiContext *common.ApiContext) http.Handler {
  h := HealthHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.HealthRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/", h.Database)

  return r
}

func (h *HealthHandler) Database(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  data := &DbHealthResponse{
    EnvCheck: &EnvCheck{
      HasDbDriver: common.GetEnvString("DB_DRIVER") != "",
      HasDbDsn:    common.GetEnvString("DB_DSN") != "",
      HasRedis:    h.ApiContext.Rdb != nil,
      HasNats:     h.ApiContext.Nats != nil,
    },
    DbHost: dbHost(common.GetEnvStringOr("DB_DRIVER", "sqlite"), common.GetEnvString("DB_DSN")),
  }

  if err := h.Repository.Ping(); err != nil {
    log.Error().Err(err).Msg("database ping failed")
    data.Error = err.Error()
    response.JsonStatus(http.StatusInternalServerError, data)
    return
  }
  tables, err := h.Repository.Tables()
  if err != nil {
    data.Error = err.Error()
    response.JsonStatus(http.StatusInternalServerError, data)
    return
  }

  data.Ok = true
  data.Tables = tables
  data.Counts = h.Repository.Counts()
  data.Samples = h.Repository.Samples(3)
  response.Json(data)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
  (&api.ResponseHandler{Writer: w}).Json(map[string]bool{"ok": true})
}

// dbHost reports the host of URL-style DSNs and the driver name otherwise.
func dbHost(driver string, dsn string) string {
  if u, err := url.Parse(dsn); err == nil && u.Host != "" {
    return u.Hostname()
  }
  return driver
}
