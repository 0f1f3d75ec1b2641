package v1

import (
  "context"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"
  "time"

  "github.com/goccy/go-json"
  "github.com/stretchr/testify/require"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T) *common.ApiContext {
  t.Helper()
  db := common.NewMemoryDB()
  require.NoError(t, models.AutoMigrate(db))
  t.Cleanup(func() {
    if pool, err := db.DB(); err == nil {
      pool.Close()
    }
  })
  return &common.ApiContext{
    Db:  db,
    Ctx: context.Background(),
    Clock: func() time.Time {
      return testNow
    },
  }
}

func request(
  t *testing.T,
  handler http.Handler,
  method string,
  path string,
  body string,
  headers map[string]string,
) *httptest.ResponseRecorder {
  t.Helper()
  r := httptest.NewRequest(method, path, strings.NewReader(body))
  if body != "" {
    r.Header.Set("Content-Type", "application/json")
  }
  for key, value := range headers {
    r.Header.Set(key, value)
  }
  w := httptest.NewRecorder()
  handler.ServeHTTP(w, r)
  return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
  t.Helper()
  var data map[string]interface{}
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data), w.Body.String())
  return data
}

func seedCreator(t *testing.T, apiContext *common.ApiContext, username string) *models.Creator {
  t.Helper()
  creator, err := (&repositories.CreatorsRepository{Db: apiContext.Db}).Create(username, "", "")
  require.NoError(t, err)
  return creator
}

func seedPost(t *testing.T, apiContext *common.ApiContext, creator *models.Creator, publishedAt time.Time, views int64) string {
  t.Helper()
  id, err := (&repositories.PostsRepository{Db: apiContext.Db}).Upsert(&models.Post{
    CreatorID:   creator.ID,
    ExternalID:  "ext-" + creator.Username + publishedAt.Format(time.RFC3339),
    Platform:    config.PLATFORM_TIKTOK,
    ContentType: config.CONTENT_TYPE_VIDEO,
    Caption:     "caption",
    PostUrl:     "https://www.tiktok.com/@" + creator.Username + "/video/1",
    PublishedAt: publishedAt,
  })
  require.NoError(t, err)
  _, err = (&repositories.PostStatsRepository{Db: apiContext.Db}).Create(id, &repositories.StatValues{
    Views: views,
    Likes: views / 10,
  }, publishedAt)
  require.NoError(t, err)
  return id
}
