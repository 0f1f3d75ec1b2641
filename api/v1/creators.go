package v1

import (
  "errors"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-playground/validator/v10"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/api"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories"
  jwtRepositories "tracker.local/tiktok-dashboard/repositories/jwt"
)

type CreatorsHandler struct {
  ApiContext      *common.ApiContext
  Repository      *repositories.CreatorsRepository
  CacheRepository *repositories.CacheRepository
  Validate        *validator.Validate
}

type CreatorsResponse struct {
  Ok    bool                           `json:"ok"`
  Items []*repositories.CreatorListing `json:"items"`
  Count int                            `json:"count"`
}

type CreatorInfo struct {
  ID          string `json:"id"`
  Username    string `json:"username"`
  DisplayName string `json:"display_name"`
  ProfileUrl  string `json:"profile_url"`
  IsActive    bool   `json:"is_active"`
}

type CreatorResponse struct {
  Ok      bool         `json:"ok"`
  Creator *CreatorInfo `json:"creator"`
}

type creatorCreateInput struct {
  Username    string `json:"username" validate:"required,max=64"`
  DisplayName string `json:"display_name" validate:"max=128"`
  ExternalID  string `json:"external_id" validate:"max=64"`
}

type creatorUpdateInput struct {
  Username    *string `json:"username" validate:"omitempty,min=1,max=64"`
  DisplayName *string `json:"display_name" validate:"omitempty,max=128"`
  IsActive    *bool   `json:"is_active"`
}

func NewCreatorsRouter(apiContext *common.ApiContext) http.Handler {
  h := CreatorsHandler{
    ApiContext: apiContext,
    Validate:   validator.New(),
  }
  h.Repository = &repositories.CreatorsRepository{
    Db: h.ApiContext.Db,
  }
  h.CacheRepository = &repositories.CacheRepository{
    Rdb: h.ApiContext.Rdb,
    Ctx: h.ApiContext.Ctx,
  }

  r := chi.NewRouter()
  r.Get("/", h.Listings)
  r.Group(func(r chi.Router) {
    if common.GetEnvBool("AUTH_REQUIRED") {
      r.Use(api.Authenticator(jwtRepositories.NewTokenRepository()))
    }
    r.Post("/", h.Create)
    r.Put("/{id}", h.Update)
    r.Delete("/{id}", h.Delete)
  })
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func (h *CreatorsHandler) Listings(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  items, err := h.Repository.Listings(config.CREATORS_LISTING_LIMIT)
  if err != nil {
    log.Error().Err(err).Msg("creators listing failed")
    response.Error(http.StatusInternalServerError, err.Error())
    return
  }

  response.Json(&CreatorsResponse{
    Ok:    true,
    Items: items,
    Count: len(items),
  })
}

func (h *CreatorsHandler) Create(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var input creatorCreateInput
  if err := api.Decode(r, &input); err != nil {
    response.Error(http.StatusBadRequest, "Invalid request body")
    return
  }
  input.Username = repositories.NormalizeUsername(input.Username)
  if err := h.Validate.Struct(&input); err != nil {
    response.Error(http.StatusBadRequest, "Username is required")
    return
  }

  creator, err := h.Repository.Create(input.Username, input.DisplayName, input.ExternalID)
  if errors.Is(err, repositories.ErrConflict) {
    response.Error(http.StatusConflict, "Creator already exists")
    return
  }
  if err != nil {
    log.Error().Err(err).Str("username", input.Username).Msg("create creator failed")
    response.Error(http.StatusInternalServerError, "Failed to create creator")
    return
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)

  response.JsonStatus(http.StatusCreated, &CreatorResponse{
    Ok:      true,
    Creator: creatorInfo(creator),
  })
}

func (h *CreatorsHandler) Update(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var input creatorUpdateInput
  if err := api.Decode(r, &input); err != nil {
    response.Error(http.StatusBadRequest, "Invalid request body")
    return
  }
  if input.Username != nil {
    username := repositories.NormalizeUsername(*input.Username)
    input.Username = &username
  }
  if err := h.Validate.Struct(&input); err != nil {
    response.Error(http.StatusBadRequest, "Invalid creator fields")
    return
  }

  creator, err := h.Repository.Find(chi.URLParam(r, "id"))
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "Creator not found")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, "Failed to update creator")
    return
  }

  values := map[string]interface{}{}
  if input.Username != nil {
    values["username"] = *input.Username
    values["profile_url"] = "https://www.tiktok.com/@" + *input.Username
  }
  if input.DisplayName != nil {
    values["display_name"] = *input.DisplayName
  }
  if input.IsActive != nil {
    values["is_active"] = *input.IsActive
  }
  if len(values) > 0 {
    err = h.Repository.Updates(creator, values)
    if errors.Is(err, repositories.ErrConflict) {
      response.Error(http.StatusConflict, "Creator already exists")
      return
    }
    if err != nil {
      log.Error().Err(err).Str("creator_id", creator.ID).Msg("update creator failed")
      response.Error(http.StatusInternalServerError, "Failed to update creator")
      return
    }
    h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)
  }

  creator, _ = h.Repository.Find(creator.ID)
  response.Json(&CreatorResponse{
    Ok:      true,
    Creator: creatorInfo(creator),
  })
}

// Delete deactivates the creator, the stored posts stay until the next sync.
func (h *CreatorsHandler) Delete(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  creator, err := h.Repository.Find(chi.URLParam(r, "id"))
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "Creator not found")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, "Failed to delete creator")
    return
  }
  if err := h.Repository.Update(creator, "is_active", false); err != nil {
    log.Error().Err(err).Str("creator_id", creator.ID).Msg("deactivate creator failed")
    response.Error(http.StatusInternalServerError, "Failed to delete creator")
    return
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)

  creator.IsActive = false
  response.Json(&CreatorResponse{
    Ok:      true,
    Creator: creatorInfo(creator),
  })
}

func creatorInfo(creator *models.Creator) *CreatorInfo {
  if creator == nil {
    return nil
  }
  return &CreatorInfo{
    ID:          creator.ID,
    Username:    creator.Username,
    DisplayName: creator.DisplayName,
    ProfileUrl:  creator.ProfileUrl,
    IsActive:    creator.IsActive,
  }
}
