package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
)

type CpmsHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.PaymentsRepository
}

type CpmsResponse struct {
  Success bool                       `json:"success"`
  Data    []*repositories.CreatorCPM `json:"data"`
}

func NewCpmsRouter(apiContext *common.ApiContext) http.Handler {
  h := CpmsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.PaymentsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/calculate", h.Calculate)

  return r
}

func (h *CpmsHandler) Calculate(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  data, err := h.Repository.CPMs()
  if err != nil {
    log.Error().Err(err).Msg("cpm calculation failed")
    response.Error(http.StatusInternalServerError, "Failed to calculate CPM data")
    return
  }

  response.Json(&CpmsResponse{Success: true, Data: data})
}
