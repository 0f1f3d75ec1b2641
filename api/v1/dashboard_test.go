package v1

import (
  "net/http"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
  apiContext := newTestContext(t)
  kat := seedCreator(t, apiContext, "kat.picks")
  seedPost(t, apiContext, kat, testNow.Add(-2*time.Hour), 100)
  seedPost(t, apiContext, kat, testNow.AddDate(0, 0, -3), 50)
  router := NewRouter(apiContext)

  w := request(t, router, http.MethodGet, "/api/dashboard/stats", "", nil)
  require.Equal(t, http.StatusOK, w.Code)
  data := decode(t, w)
  assert.Equal(t, true, data["success"])
  stats := data["data"].(map[string]interface{})
  assert.Equal(t, float64(2), stats["totalPosts"])
  assert.Equal(t, float64(1), stats["totalCreators"])
  assert.Equal(t, float64(150), stats["totalViews"])
  assert.Len(t, stats["topPosts"], 2)
}

func TestDashboardTopVideo(t *testing.T) {
  apiContext := newTestContext(t)
  kat := seedCreator(t, apiContext, "kat.picks")
  seedPost(t, apiContext, kat, testNow.Add(-2*time.Hour), 100)
  router := NewRouter(apiContext)

  t.Run("missing date", func(t *testing.T) {
    w := request(t, router, http.MethodGet, "/api/dashboard/top-video", "", nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Date parameter is required", decode(t, w)["message"])
  })

  t.Run("no video", func(t *testing.T) {
    w := request(t, router, http.MethodGet, "/api/dashboard/top-video?date=2026-01-01", "", nil)
    assert.Equal(t, http.StatusNotFound, w.Code)
    assert.Equal(t, "No video found for this date", decode(t, w)["message"])
  })

  t.Run("found", func(t *testing.T) {
    w := request(t, router, http.MethodGet, "/api/dashboard/top-video?date=2026-03-10", "", nil)
    require.Equal(t, http.StatusOK, w.Code)
    video := decode(t, w)["video"].(map[string]interface{})
    assert.Equal(t, float64(100), video["views"])
  })
}

func TestDashboardDemo(t *testing.T) {
  router := NewRouter(newTestContext(t))
  w := request(t, router, http.MethodGet, "/api/dashboard/stats-demo", "", nil)
  require.Equal(t, http.StatusOK, w.Code)
  stats := decode(t, w)["data"].(map[string]interface{})
  assert.NotEmpty(t, stats["creatorStats"])
}

func TestDashboardMethodNotAllowed(t *testing.T) {
  router := NewRouter(newTestContext(t))
  w := request(t, router, http.MethodPost, "/api/dashboard/stats", "", nil)
  assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthz(t *testing.T) {
  router := NewRouter(newTestContext(t))
  w := request(t, router, http.MethodGet, "/healthz", "", nil)
  assert.Equal(t, http.StatusOK, w.Code)
  assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
