package v1

import (
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "tracker.local/tiktok-dashboard/repositories/scrapers"
)

const testToken = "apify_api_token_123"

func newTestSyncHandler(t *testing.T, actorID string, handler http.HandlerFunc) *SyncHandler {
  t.Helper()
  server := httptest.NewServer(handler)
  t.Cleanup(server.Close)
  return &SyncHandler{
    ApiContext: newTestContext(t),
    Client:     scrapers.NewApifyClientWith(server.URL, testToken, server.Client()),
    Token:      testToken,
    ActorID:    actorID,
  }
}

func TestValidActorID(t *testing.T) {
  tests := []struct {
    id   string
    want bool
  }{
    {"apify~tiktok-scraper", true},
    {"clockworks~free-tiktok-scraper", true},
    {"12345678-ABCD-1234-abcd-123456789abc", true},
    {"vB0foLluLnDBEWNgL", false},
    {"apify/tiktok-scraper", false},
    {"", false},
  }
  for _, tt := range tests {
    t.Run(tt.id, func(t *testing.T) {
      assert.Equal(t, tt.want, ValidActorID(tt.id))
    })
  }
}

func TestSyncRun(t *testing.T) {
  t.Run("missing env", func(t *testing.T) {
    h := &SyncHandler{ApiContext: newTestContext(t), Token: "short"}
    w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/sync", "", nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Missing env: APIFY_TOKEN, APIFY_ACTOR_ID", decode(t, w)["error"])
  })

  t.Run("invalid actor id", func(t *testing.T) {
    called := false
    h := newTestSyncHandler(t, "vB0foLluLnDBEWNgL", func(w http.ResponseWriter, r *http.Request) {
      called = true
    })
    w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/sync", "", nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    data := decode(t, w)
    assert.Equal(t, "Invalid Actor ID format", data["error"])
    details := data["details"].(map[string]interface{})
    assert.Equal(t, "vB0foLluLnDBEWNgL", details["actorId"])
    assert.Len(t, details["howToFix"], 4)
    assert.Len(t, details["expectedFormats"], 2)
    assert.False(t, called)
  })

  t.Run("actor not found", func(t *testing.T) {
    h := newTestSyncHandler(t, "apify~missing", func(w http.ResponseWriter, r *http.Request) {
      w.WriteHeader(http.StatusNotFound)
      w.Write([]byte(`{"error":{"type":"record-not-found","message":"Actor was not found"}}`))
    })
    w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/sync", "", nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    data := decode(t, w)
    assert.Equal(t, "Apify Actor not found", data["error"])
    details := data["details"].(map[string]interface{})
    assert.Equal(t, "Actor was not found", details["message"])
    assert.Equal(t, "https://api.apify.com/v2/acts/apify~missing/runs?token=***", details["actorUrl"])
    assert.NotContains(t, w.Body.String(), testToken)
  })

  t.Run("apify failure", func(t *testing.T) {
    h := newTestSyncHandler(t, "apify~tiktok-scraper", func(w http.ResponseWriter, r *http.Request) {
      w.WriteHeader(http.StatusPaymentRequired)
      w.Write([]byte(`{"error":{"type":"not-enough-usage","message":"Monthly usage exceeded"}}`))
    })
    w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/sync", "", nil)
    assert.Equal(t, http.StatusInternalServerError, w.Code)
    failure := decode(t, w)["error"].(map[string]interface{})
    assert.Equal(t, "not-enough-usage", failure["type"])
    assert.Equal(t, "Monthly usage exceeded", failure["message"])
  })

  t.Run("started", func(t *testing.T) {
    h := newTestSyncHandler(t, "apify~tiktok-scraper", func(w http.ResponseWriter, r *http.Request) {
      assert.Equal(t, "/acts/apify~tiktok-scraper/runs", r.URL.Path)
      w.WriteHeader(http.StatusCreated)
      w.Write([]byte(`{"data":{"id":"run-1","status":"READY"}}`))
    })
    w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/sync", "", nil)
    require.Equal(t, http.StatusOK, w.Code, w.Body.String())
    assert.JSONEq(t, `{"ok":true,"runId":"run-1"}`, w.Body.String())
  })
}

func TestSyncDebug(t *testing.T) {
  t.Setenv("APP_ENV", "production")
  h := &SyncHandler{ApiContext: newTestContext(t), Token: testToken, ActorID: "apify~tiktok-scraper"}
  w := request(t, http.HandlerFunc(h.Debug), http.MethodGet, "/api/sync-debug", "", nil)
  require.Equal(t, http.StatusOK, w.Code)
  data := decode(t, w)
  assert.Equal(t, true, data["hasAPIFY_TOKEN"])
  assert.Equal(t, true, data["hasAPIFY_ACTOR_ID"])
  assert.Equal(t, "production", data["env"])
  assert.Equal(t, "https://api.apify.com/v2/acts/apify~tiktok-scraper/runs?token=***", data["apifyUrlPreview"])

  h = &SyncHandler{ApiContext: newTestContext(t)}
  w = request(t, http.HandlerFunc(h.Debug), http.MethodGet, "/api/sync-debug", "", nil)
  data = decode(t, w)
  assert.Equal(t, false, data["hasAPIFY_TOKEN"])
  assert.Nil(t, data["apifyUrlPreview"])
}
