package api

import (
  "context"
  "fmt"
  "net/http"
  "strings"
  "time"

  "github.com/go-chi/chi/v5"
  "github.com/go-chi/chi/v5/middleware"
  "github.com/go-chi/cors"
  "github.com/go-chi/httprate"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/metrics"
  jwtRepositories "tracker.local/tiktok-dashboard/repositories/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

func Logger(next http.Handler) http.Handler {
  return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    started := time.Now()
    ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
    next.ServeHTTP(ww, r)
    log.Info().
      Str("request_id", middleware.GetReqID(r.Context())).
      Str("method", r.Method).
      Str("path", r.URL.Path).
      Int("status", ww.Status()).
      Dur("duration", time.Since(started)).
      Msg("http request")
  })
}

func Metrics(next http.Handler) http.Handler {
  return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    started := time.Now()
    ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
    next.ServeHTTP(ww, r)

    route := "unmatched"
    if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
      route = rctx.RoutePattern()
    }
    metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, fmt.Sprintf("%d", ww.Status())).Inc()
    metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(started).Seconds())
  })
}

func CORS(origins []string) func(http.Handler) http.Handler {
  if len(origins) == 0 {
    origins = []string{"*"}
  }
  return cors.Handler(cors.Options{
    AllowedOrigins:   origins,
    AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
    AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Key"},
    AllowCredentials: len(origins) > 0 && origins[0] != "*",
    MaxAge:           300,
  })
}

func RateLimit(requests int) func(http.Handler) http.Handler {
  if requests <= 0 {
    requests = 120
  }
  return httprate.LimitByIP(requests, time.Minute)
}

// TokenFromRequest reads a bearer token from the Authorization header, falling back to the auth cookie.
func TokenFromRequest(r *http.Request) string {
  if header := r.Header.Get("Authorization"); header != "" {
    if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
      return token
    }
  }
  if cookie, err := r.Cookie(config.AUTH_COOKIE_NAME); err == nil {
    return cookie.Value
  }
  return ""
}

func Authenticator(tokens *jwtRepositories.TokenRepository) func(http.Handler) http.Handler {
  return func(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
      response := &ResponseHandler{Writer: w}
      token := TokenFromRequest(r)
      if token == "" {
        response.Error(http.StatusUnauthorized, "No token provided")
        return
      }
      claims, err := tokens.Verify(token)
      if err != nil {
        response.Error(http.StatusUnauthorized, "Invalid token")
        return
      }
      next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
    })
  }
}

func ClaimsFromContext(ctx context.Context) *jwtRepositories.Claims {
  claims, _ := ctx.Value(claimsKey).(*jwtRepositories.Claims)
  return claims
}
