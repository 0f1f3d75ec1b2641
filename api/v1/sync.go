package v1

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "regexp"
  "runtime"
  "strings"

  "github.com/go-chi/chi/v5"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories/scrapers"
)

var (
  actorSlugPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+~[a-zA-Z0-9._-]+$`)
  actorUUIDPattern = regexp.MustCompile(`(?i)^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
)

type SyncHandler struct {
  ApiContext *common.ApiContext
  Client     *scrapers.ApifyClient
  Token      string
  ActorID    string
}

type SyncRunResponse struct {
  Ok    bool   `json:"ok"`
  RunID string `json:"runId"`
}

type SyncGuidance struct {
  Message         string   `json:"message"`
  ActorID         string   `json:"actorId"`
  ActorUrl        string   `json:"actorUrl,omitempty"`
  ExpectedFormats []string `json:"expectedFormats,omitempty"`
  HowToFix        []string `json:"howToFix"`
}

type SyncGuidanceResponse struct {
  Error   string        `json:"error"`
  Details *SyncGuidance `json:"details"`
}

type SyncFailure struct {
  Type    string `json:"type"`
  Message string `json:"message"`
}

type SyncFailureResponse struct {
  Error *SyncFailure `json:"error"`
}

type SyncDebugResponse struct {
  Ok              bool    `json:"ok"`
  HasApifyToken   bool    `json:"hasAPIFY_TOKEN"`
  HasApifyActorID bool    `json:"hasAPIFY_ACTOR_ID"`
  ApifyUrlPreview *string `json:"apifyUrlPreview"`
  GoVersion       string  `json:"goVersion"`
  Env             string  `json:"env"`
}

func NewSyncHandler(apiContext *common.ApiContext) *SyncHandler {
  return &SyncHandler{
    ApiContext: apiContext,
    Client:     scrapers.NewApifyClient(),
    Token:      common.GetEnvString("APIFY_TOKEN"),
    ActorID:    common.GetEnvString("APIFY_ACTOR_ID"),
  }
}

func NewSyncRouter(apiContext *common.ApiContext) http.Handler {
  h := NewSyncHandler(apiContext)

  r := chi.NewRouter()
  r.Post("/", h.Run)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func NewSyncDebugRouter(apiContext *common.ApiContext) http.Handler {
  h := NewSyncHandler(apiContext)

  r := chi.NewRouter()
  r.Get("/", h.Debug)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

// Run starts a single actor run with an empty input and returns its id without waiting.
func (h *SyncHandler) Run(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var missing []string
  if len(h.Token) <= 10 {
    missing = append(missing, "APIFY_TOKEN")
  }
  if h.ActorID == "" {
    missing = append(missing, "APIFY_ACTOR_ID")
  }
  if len(missing) > 0 {
    response.Error(http.StatusBadRequest, fmt.Sprintf("Missing env: %v", strings.Join(missing, ", ")))
    return
  }

  if !ValidActorID(h.ActorID) {
    response.JsonStatus(http.StatusBadRequest, &SyncGuidanceResponse{
      Error: "Invalid Actor ID format",
      Details: &SyncGuidance{
        Message: fmt.Sprintf(`The Actor ID "%v" doesn't match the expected format`, h.ActorID),
        ActorID: h.ActorID,
        ExpectedFormats: []string{
          "username~actor-name (e.g., apify~tiktok-scraper)",
          "Actor UUID (e.g., 12345678-abcd-1234-abcd-123456789abc)",
        },
        HowToFix: []string{
          "Go to Apify → Actors → Your Actor → API tab",
          "Copy the exact ID from the Run URL: https://api.apify.com/v2/acts/<ACTOR_ID>/runs",
          "The ID should look like: username~actor-name or a UUID",
          "If you see a shorter ID like vB0foLluLnDBEWNgL, that might be a Task ID, not an Actor ID",
        },
      },
    })
    return
  }

  log.Info().Str("actor_id", h.ActorID).Msg("starting apify actor run")
  run, err := h.Client.StartActorRun(context.WithoutCancel(r.Context()), h.ActorID, map[string]interface{}{})
  if err != nil {
    var apiErr *scrapers.APIError
    if errors.As(err, &apiErr) && apiErr.IsNotFound() {
      message := apiErr.Message
      if message == "" {
        message = "Actor was not found"
      }
      response.JsonStatus(http.StatusBadRequest, &SyncGuidanceResponse{
        Error: "Apify Actor not found",
        Details: &SyncGuidance{
          Message:  message,
          ActorID:  h.ActorID,
          ActorUrl: actorPreview(h.ActorID),
          HowToFix: []string{
            "Use the exact Actor ID from Apify → Actor → API tab (acts/<ID>/runs)",
            "Accepted formats: username~actor-name or the Actor UUID",
            "Ensure APIFY_TOKEN belongs to an account with access to this Actor",
          },
        },
      })
      return
    }

    log.Error().Err(err).Str("actor_id", h.ActorID).Msg("apify actor run failed")
    failure := &SyncFailure{Message: err.Error()}
    if apiErr != nil {
      failure.Type = apiErr.Type
      failure.Message = apiErr.Message
    }
    response.JsonStatus(http.StatusInternalServerError, &SyncFailureResponse{Error: failure})
    return
  }

  response.Json(&SyncRunResponse{
    Ok:    true,
    RunID: run.ID,
  })
}

func (h *SyncHandler) Debug(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  data := &SyncDebugResponse{
    Ok:              true,
    HasApifyToken:   len(h.Token) > 10,
    HasApifyActorID: h.ActorID != "",
    GoVersion:       runtime.Version(),
    Env:             common.GetEnvStringOr("APP_ENV", "local"),
  }
  if h.ActorID != "" {
    preview := actorPreview(h.ActorID)
    data.ApifyUrlPreview = &preview
  }
  response.Json(data)
}

func ValidActorID(actorID string) bool {
  return actorSlugPattern.MatchString(actorID) || actorUUIDPattern.MatchString(actorID)
}

func actorPreview(actorID string) string {
  return fmt.Sprintf("https://api.apify.com/v2/acts/%v/runs?token=***", actorID)
}
