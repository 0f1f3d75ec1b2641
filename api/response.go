package api

import (
  "net/http"

  "github.com/goccy/go-json"
  "github.com/rs/zerolog/log"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

type ErrorResponse struct {
  Success bool   `json:"success"`
  Error   string `json:"error"`
}

func (h *ResponseHandler) Json(data interface{}) {
  h.JsonStatus(http.StatusOK, data)
}

func (h *ResponseHandler) JsonStatus(status int, data interface{}) {
  body, err := json.Marshal(data)
  if err != nil {
    log.Error().Err(err).Msg("response encoding failed")
    status = http.StatusInternalServerError
    body = []byte(`{"success":false,"error":"Internal server error"}`)
  }
  h.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
  h.Writer.WriteHeader(status)
  h.Writer.Write(body)
}

func (h *ResponseHandler) Error(status int, message string) {
  h.JsonStatus(status, &ErrorResponse{
    Success: false,
    Error:   message,
  })
}

func (h *ResponseHandler) MethodNotAllowed() {
  h.Error(http.StatusMethodNotAllowed, "Method not allowed")
}

func Decode(r *http.Request, out interface{}) error {
  defer r.Body.Close()
  return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(out)
}
