package v1

import (
  "context"
  "crypto/subtle"
  "errors"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/hibiken/asynq"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
  "tracker.local/tiktok-dashboard/repositories/scrapers"
  "tracker.local/tiktok-dashboard/tasks"
)

type CronHandler struct {
  ApiContext *common.ApiContext
  Secret     string
  Repository *repositories.SyncRepository
  SyncTask   *tasks.SyncTask
}

type CronResponse struct {
  Success   bool   `json:"success"`
  Message   string `json:"message"`
  Processed int64  `json:"processed"`
  Errors    int64  `json:"errors"`
  Batches   int    `json:"batches"`
}

type CronEmptyResponse struct {
  Success   bool   `json:"success"`
  Message   string `json:"message"`
  Processed int64  `json:"processed"`
}

type CronQueuedResponse struct {
  Success bool   `json:"success"`
  Message string `json:"message"`
  TaskID  string `json:"taskId"`
}

func NewCronRouter(apiContext *common.ApiContext) http.Handler {
  h := CronHandler{
    ApiContext: apiContext,
    Secret:     common.GetEnvString("CRON_SECRET"),
  }
  h.Repository = repositories.NewSyncRepository(
    h.ApiContext.Db,
    h.ApiContext.Rdb,
    h.ApiContext.Nats,
    scrapers.NewTikTokScraper(),
  )
  if h.ApiContext.Asynq != nil {
    h.SyncTask = tasks.NewSyncTask(&common.AnsqClientContext{
      Db:   h.ApiContext.Db,
      Rdb:  h.ApiContext.Rdb,
      Ctx:  h.ApiContext.Ctx,
      Conn: h.ApiContext.Asynq,
      Nats: h.ApiContext.Nats,
    })
  }

  r := chi.NewRouter()
  r.Options("/run", h.Options)
  r.Post("/run", h.Run)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func (h *CronHandler) Options(
  w http.ResponseWriter,
  r *http.Request,
) {
  w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
  w.Header().Set("Access-Control-Allow-Headers", "x-cron-key, content-type")
  w.WriteHeader(http.StatusOK)
}

func (h *CronHandler) Run(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  if !h.authorized(r.Header.Get("x-cron-key")) {
    log.Warn().Str("remote", r.RemoteAddr).Msg("unauthorized cron request")
    response.Error(http.StatusUnauthorized, "Unauthorized")
    return
  }

  if r.URL.Query().Get("async") == "1" {
    h.enqueue(response)
    return
  }

  // a client disconnect must not leave creators purged but not reloaded
  result, err := h.Repository.Run(context.WithoutCancel(r.Context()))
  if errors.Is(err, repositories.ErrSyncRunning) {
    response.Error(http.StatusConflict, "Sync already running")
    return
  }
  if err != nil {
    log.Error().Err(err).Msg("cron job failed")
    response.Error(http.StatusInternalServerError, err.Error())
    return
  }

  if result.Creators == 0 {
    response.Json(&CronEmptyResponse{
      Success:   true,
      Message:   "No active TikTok creators found",
      Processed: 0,
    })
    return
  }
  response.Json(&CronResponse{
    Success:   true,
    Message:   "Cron job completed",
    Processed: result.Processed,
    Errors:    result.Errors,
    Batches:   result.Batches,
  })
}

func (h *CronHandler) enqueue(response *api.ResponseHandler) {
  if h.SyncTask == nil {
    response.Error(http.StatusServiceUnavailable, "Job queue is not configured")
    return
  }
  info, err := h.SyncTask.Run("api")
  if errors.Is(err, asynq.ErrDuplicateTask) {
    response.Error(http.StatusConflict, "Sync already queued")
    return
  }
  if err != nil {
    log.Error().Err(err).Msg("enqueue sync job failed")
    response.Error(http.StatusInternalServerError, err.Error())
    return
  }
  response.JsonStatus(http.StatusAccepted, &CronQueuedResponse{
    Success: true,
    Message: "Sync job queued",
    TaskID:  info.ID,
  })
}

func (h *CronHandler) authorized(key string) bool {
  if key == "" || h.Secret == "" {
    return false
  }
  return subtle.ConstantTimeCompare([]byte(key), []byte(h.Secret)) == 1
}
