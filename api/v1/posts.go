package v1

import (
  "errors"
  "math"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-playground/validator/v10"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/repositories"
)

type PostsHandler struct {
  ApiContext      *common.ApiContext
  Repository      *repositories.PostStatsRepository
  CacheRepository *repositories.CacheRepository
  Validate        *validator.Validate
}

type StatsInfo struct {
  Views          int64   `json:"views"`
  Likes          int64   `json:"likes"`
  Comments       int64   `json:"comments"`
  Shares         int64   `json:"shares"`
  EngagementRate float64 `json:"engagement_rate"`
}

type StatsResponse struct {
  Success          bool                     `json:"success"`
  Stats            *StatsInfo               `json:"stats"`
  HasOriginalStats bool                     `json:"hasOriginalStats"`
  OriginalStats    *repositories.StatValues `json:"originalStats"`
}

type StatsUpdateResponse struct {
  Success       bool                     `json:"success"`
  Message       string                   `json:"message"`
  OriginalStats *repositories.StatValues `json:"originalStats"`
  NewStats      *repositories.StatValues `json:"newStats"`
}

type StatsUndoResponse struct {
  Success       bool                     `json:"success"`
  Message       string                   `json:"message"`
  RestoredStats *repositories.StatValues `json:"restoredStats"`
}

type statsInput struct {
  Views    interface{} `json:"views"`
  Likes    interface{} `json:"likes"`
  Comments interface{} `json:"comments"`
  Shares   interface{} `json:"shares"`
  Action   string      `json:"action"`
}

type statsValues struct {
  Views    float64 `validate:"min=0"`
  Likes    float64 `validate:"min=0"`
  Comments float64 `validate:"min=0"`
  Shares   float64 `validate:"min=0"`
}

func NewPostsRouter(apiContext *common.ApiContext) http.Handler {
  h := PostsHandler{
    ApiContext: apiContext,
    Validate:   validator.New(),
  }
  h.Repository = &repositories.PostStatsRepository{
    Db: h.ApiContext.Db,
  }
  h.CacheRepository = &repositories.CacheRepository{
    Rdb: h.ApiContext.Rdb,
    Ctx: h.ApiContext.Ctx,
  }

  r := chi.NewRouter()
  r.Get("/{id}/stats", h.Stats)
  r.Put("/{id}/stats", h.Update)
  r.Post("/{id}/stats", h.Undo)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func (h *PostsHandler) Stats(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  id := chi.URLParam(r, "id")
  stat, err := h.Repository.Latest(id)
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "Post not found")
    return
  }
  if err != nil {
    log.Error().Err(err).Str("post_id", id).Msg("fetch post stats failed")
    response.Error(http.StatusInternalServerError, "Failed to fetch post stats")
    return
  }

  data := &StatsResponse{
    Success: true,
    Stats: &StatsInfo{
      Views:          stat.Views,
      Likes:          stat.Likes,
      Comments:       stat.Comments,
      Shares:         stat.Shares,
      EngagementRate: stat.EngagementRate,
    },
  }
  if original, err := h.Repository.Original(id); err == nil {
    data.HasOriginalStats = true
    data.OriginalStats = &repositories.StatValues{
      Views:    original.Views,
      Likes:    original.Likes,
      Comments: original.Comments,
      Shares:   original.Shares,
    }
  }

  response.Json(data)
}

func (h *PostsHandler) Update(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var input statsInput
  if err := api.Decode(r, &input); err != nil {
    response.Error(http.StatusBadRequest, "Invalid input: all values must be numbers")
    return
  }
  values, ok := numbers(&input)
  if !ok {
    response.Error(http.StatusBadRequest, "Invalid input: all values must be numbers")
    return
  }
  if err := h.Validate.Struct(values); err != nil {
    response.Error(http.StatusBadRequest, "Invalid input: values cannot be negative")
    return
  }
  if message := counts(values); message != "" {
    response.Error(http.StatusBadRequest, message)
    return
  }

  id := chi.URLParam(r, "id")
  updated := &repositories.StatValues{
    Views:    int64(values.Views),
    Likes:    int64(values.Likes),
    Comments: int64(values.Comments),
    Shares:   int64(values.Shares),
  }
  original, err := h.Repository.Edit(id, updated)
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "Post not found")
    return
  }
  if err != nil {
    log.Error().Err(err).Str("post_id", id).Msg("update post stats failed")
    response.Error(http.StatusInternalServerError, "Failed to update post stats")
    return
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)

  response.Json(&StatsUpdateResponse{
    Success:       true,
    Message:       "Stats updated successfully",
    OriginalStats: original,
    NewStats:      updated,
  })
}

func (h *PostsHandler) Undo(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var input statsInput
  if err := api.Decode(r, &input); err != nil || input.Action != "undo" {
    response.MethodNotAllowed()
    return
  }

  id := chi.URLParam(r, "id")
  restored, err := h.Repository.Undo(id)
  if errors.Is(err, repositories.ErrNoOriginal) {
    response.Error(http.StatusNotFound, "No original stats found to undo to")
    return
  }
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "Post not found")
    return
  }
  if err != nil {
    log.Error().Err(err).Str("post_id", id).Msg("undo post stats failed")
    response.Error(http.StatusInternalServerError, "Failed to undo post stats")
    return
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)

  response.Json(&StatsUndoResponse{
    Success:       true,
    Message:       "Stats restored to original values",
    RestoredStats: restored,
  })
}

func numbers(input *statsInput) (*statsValues, bool) {
  values := &statsValues{}
  targets := []struct {
    in  interface{}
    out *float64
  }{
    {input.Views, &values.Views},
    {input.Likes, &values.Likes},
    {input.Comments, &values.Comments},
    {input.Shares, &values.Shares},
  }
  for _, target := range targets {
    n, ok := target.in.(float64)
    if !ok {
      return nil, false
    }
    *target.out = n
  }
  return values, true
}

// counts rejects values that do not convert exactly to an int64 count.
func counts(values *statsValues) string {
  for _, n := range []float64{values.Views, values.Likes, values.Comments, values.Shares} {
    if n >= math.MaxInt64 {
      return "Invalid input: values are too large"
    }
    if n != math.Trunc(n) {
      return "Invalid input: values must be whole numbers"
    }
  }
  return ""
}
