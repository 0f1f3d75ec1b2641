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

type AuthHandler struct {
  ApiContext      *common.ApiContext
  Repository      *repositories.UsersRepository
  TokenRepository *jwtRepositories.TokenRepository
  Validate        *validator.Validate
}

type UserInfo struct {
  ID        string `json:"id"`
  Email     string `json:"email"`
  FirstName string `json:"firstName"`
  LastName  string `json:"lastName"`
  AvatarUrl string `json:"avatarUrl"`
}

type LoginResponse struct {
  Success bool      `json:"success"`
  User    *UserInfo `json:"user"`
  Token   string    `json:"token"`
}

type UserResponse struct {
  Success bool      `json:"success"`
  User    *UserInfo `json:"user"`
}

type loginInput struct {
  Email    string `json:"email" validate:"required"`
  Password string `json:"password" validate:"required"`
}

func NewAuthRouter(apiContext *common.ApiContext) http.Handler {
  h := AuthHandler{
    ApiContext:      apiContext,
    TokenRepository: jwtRepositories.NewTokenRepository(),
    Validate:        validator.New(),
  }
  h.Repository = &repositories.UsersRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Post("/login", h.Login)
  r.Post("/logout", h.Logout)
  r.With(api.Authenticator(h.TokenRepository)).Get("/me", h.Me)
  r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
    (&api.ResponseHandler{Writer: w}).MethodNotAllowed()
  })

  return r
}

func (h *AuthHandler) Login(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var input loginInput
  api.Decode(r, &input)
  if err := h.Validate.Struct(&input); err != nil {
    response.Error(http.StatusBadRequest, "Email and password are required")
    return
  }

  user := h.Repository.Authenticate(input.Email, input.Password)
  if user == nil {
    response.Error(http.StatusUnauthorized, "Invalid credentials")
    return
  }

  token, err := h.TokenRepository.Generate(user)
  if err != nil {
    log.Error().Err(err).Str("user_id", user.ID).Msg("token generation failed")
    response.Error(http.StatusInternalServerError, "Internal server error")
    return
  }

  http.SetCookie(w, &http.Cookie{
    Name:     config.AUTH_COOKIE_NAME,
    Value:    token,
    Path:     "/",
    MaxAge:   config.AUTH_COOKIE_MAX_AGE,
    HttpOnly: true,
    SameSite: http.SameSiteStrictMode,
  })
  response.Json(&LoginResponse{
    Success: true,
    User:    userInfo(user),
    Token:   token,
  })
}

func (h *AuthHandler) Logout(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  http.SetCookie(w, &http.Cookie{
    Name:     config.AUTH_COOKIE_NAME,
    Value:    "",
    Path:     "/",
    MaxAge:   -1,
    HttpOnly: true,
    SameSite: http.SameSiteStrictMode,
  })
  response.Json(&MessageResponse{
    Success: true,
    Message: "Logged out successfully",
  })
}

func (h *AuthHandler) Me(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  claims := api.ClaimsFromContext(r.Context())
  if claims == nil {
    response.Error(http.StatusUnauthorized, "Invalid token")
    return
  }
  user, err := h.Repository.Find(claims.UserID)
  if errors.Is(err, repositories.ErrNotFound) {
    response.Error(http.StatusNotFound, "User not found")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, "Internal server error")
    return
  }

  response.Json(&UserResponse{
    Success: true,
    User:    userInfo(user),
  })
}

func userInfo(user *models.User) *UserInfo {
  return &UserInfo{
    ID:        user.ID,
    Email:     user.Email,
    FirstName: user.FirstName,
    LastName:  user.LastName,
    AvatarUrl: user.AvatarUrl,
  }
}
