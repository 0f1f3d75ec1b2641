package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
)

type PaymentsHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.PaymentsRepository
}

type PaymentsResponse struct {
  Success bool                           `json:"success"`
  Data    []*repositories.CreatorPayment `json:"data"`
}

func NewPaymentsRouter(apiContext *common.ApiContext) http.Handler {
  h := PaymentsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.PaymentsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/status", h.Status)

  return r
}

func (h *PaymentsHandler) Status(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  data, err := h.Repository.Statuses(h.ApiContext.Now())
  if err != nil {
    log.Error().Err(err).Msg("payment status failed")
    response.Error(http.StatusInternalServerError, "Failed to fetch payment data")
    return
  }

  response.Json(&PaymentsResponse{Success: true, Data: data})
}
