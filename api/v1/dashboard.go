package v1

import (
  "errors"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/repositories"
)

type DashboardHandler struct {
  ApiContext      *common.ApiContext
  Repository      *repositories.DashboardRepository
  CacheRepository *repositories.CacheRepository
}

type DashboardResponse struct {
  Success bool                         `json:"success"`
  Data    *repositories.DashboardStats `json:"data"`
}

type TopVideoResponse struct {
  Success bool                   `json:"success"`
  Video   *repositories.TopVideo `json:"video"`
}

type MessageResponse struct {
  Success bool   `json:"success"`
  Message string `json:"message"`
}

func NewDashboardRouter(apiContext *common.ApiContext) http.Handler {
  h := DashboardHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.DashboardRepository{
    Db: h.ApiContext.Db,
  }
  h.CacheRepository = &repositories.CacheRepository{
    Rdb: h.ApiContext.Rdb,
    Ctx: h.ApiContext.Ctx,
  }

  r := chi.NewRouter()
  r.Get("/stats", h.Stats)
  r.Get("/stats-demo", h.Demo)
  r.Get("/top-video", h.TopVideo)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func (h *DashboardHandler) Stats(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var stats *repositories.DashboardStats
  if h.CacheRepository.Get(config.REDIS_KEY_DASHBOARD_STATS, &stats) && stats != nil {
    response.Json(&DashboardResponse{Success: true, Data: stats})
    return
  }

  stats, err := h.Repository.Stats(h.ApiContext.Now())
  if err != nil {
    log.Error().Err(err).Msg("dashboard stats failed")
    response.Error(http.StatusInternalServerError, "Failed to fetch dashboard stats")
    return
  }
  h.CacheRepository.Set(config.REDIS_KEY_DASHBOARD_STATS, stats, config.DASHBOARD_CACHE_TTL)

  response.Json(&DashboardResponse{Success: true, Data: stats})
}

func (h *DashboardHandler) TopVideo(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  date := r.URL.Query().Get("date")
  if date == "" {
    response.JsonStatus(http.StatusBadRequest, &MessageResponse{Message: "Date parameter is required"})
    return
  }

  video, err := h.Repository.TopVideo(date)
  if errors.Is(err, repositories.ErrNotFound) {
    response.JsonStatus(http.StatusNotFound, &MessageResponse{Message: "No video found for this date"})
    return
  }
  if err != nil {
    log.Error().Err(err).Str("date", date).Msg("top video failed")
    response.JsonStatus(http.StatusInternalServerError, &MessageResponse{Message: "Internal server error"})
    return
  }

  response.Json(&TopVideoResponse{Success: true, Video: video})
}

func (h *DashboardHandler) Demo(
  w http.ResponseWriter,
  r *http.Request,
) {
  (&api.ResponseHandler{Writer: w}).Json(&DashboardResponse{
    Success: true,
    Data:    demoStats(h.ApiContext.Now()),
  })
}
