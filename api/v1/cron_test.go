package v1

import (
  "context"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/tidwall/gjson"

  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories"
)

type stubScraper struct {
  calls  int
  onCall func()
}

func (s *stubScraper) RunTikTokScraper(ctx context.Context, creators []*models.Creator) ([]gjson.Result, error) {
  s.calls++
  if s.onCall != nil {
    s.onCall()
  }
  var items []gjson.Result
  for _, creator := range creators {
    items = append(items, gjson.Parse(`{
      "id": "v-`+creator.Username+`",
      "webVideoUrl": "https://www.tiktok.com/@`+creator.Username+`/video/1",
      "createTimeISO": "2026-03-09T10:00:00Z",
      "playCount": 1000,
      "authorMeta": {"name": "`+creator.Username+`"}
    }`))
  }
  return items, nil
}

func TestCronRouter(t *testing.T) {
  t.Setenv("CRON_SECRET", "cron-secret")
  router := NewRouter(newTestContext(t))

  t.Run("missing key", func(t *testing.T) {
    w := request(t, router, http.MethodPost, "/api/cron/run", "", nil)
    assert.Equal(t, http.StatusUnauthorized, w.Code)
    assert.Equal(t, "Unauthorized", decode(t, w)["error"])
  })

  t.Run("wrong key", func(t *testing.T) {
    w := request(t, router, http.MethodPost, "/api/cron/run", "", map[string]string{"x-cron-key": "nope"})
    assert.Equal(t, http.StatusUnauthorized, w.Code)
  })

  t.Run("options", func(t *testing.T) {
    w := request(t, router, http.MethodOptions, "/api/cron/run", "", nil)
    assert.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
    assert.Equal(t, "x-cron-key, content-type", w.Header().Get("Access-Control-Allow-Headers"))
  })

  t.Run("get not allowed", func(t *testing.T) {
    w := request(t, router, http.MethodGet, "/api/cron/run", "", nil)
    assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
  })

  t.Run("no creators", func(t *testing.T) {
    w := request(t, router, http.MethodPost, "/api/cron/run", "", map[string]string{"x-cron-key": "cron-secret"})
    require.Equal(t, http.StatusOK, w.Code)
    data := decode(t, w)
    assert.Equal(t, true, data["success"])
    assert.Equal(t, "No active TikTok creators found", data["message"])
    assert.Equal(t, float64(0), data["processed"])
  })

  t.Run("async without queue", func(t *testing.T) {
    w := request(t, router, http.MethodPost, "/api/cron/run?async=1", "", map[string]string{"x-cron-key": "cron-secret"})
    assert.Equal(t, http.StatusServiceUnavailable, w.Code)
  })
}

func TestCronRun(t *testing.T) {
  apiContext := newTestContext(t)
  seedCreator(t, apiContext, "kat.picks")
  seedCreator(t, apiContext, "leo.picks")
  scraper := &stubScraper{}
  h := &CronHandler{
    ApiContext: apiContext,
    Secret:     "cron-secret",
    Repository: &repositories.SyncRepository{
      Db:        apiContext.Db,
      Scraper:   scraper,
      BatchSize: 1,
    },
  }

  w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/cron/run", "", map[string]string{"x-cron-key": "cron-secret"})
  require.Equal(t, http.StatusOK, w.Code, w.Body.String())
  data := decode(t, w)
  assert.Equal(t, "Cron job completed", data["message"])
  assert.Equal(t, float64(2), data["processed"])
  assert.Equal(t, float64(0), data["errors"])
  assert.Equal(t, float64(2), data["batches"])
  assert.Equal(t, 2, scraper.calls)
}

func TestCronRunSurvivesClientDisconnect(t *testing.T) {
  apiContext := newTestContext(t)
  kat := seedCreator(t, apiContext, "kat.picks")
  leo := seedCreator(t, apiContext, "leo.picks")

  ctx, cancel := context.WithCancel(context.Background())
  defer cancel()
  scraper := &stubScraper{onCall: cancel}
  h := &CronHandler{
    ApiContext: apiContext,
    Secret:     "cron-secret",
    Repository: &repositories.SyncRepository{
      Db:         apiContext.Db,
      Scraper:    scraper,
      BatchSize:  1,
      BatchSleep: 20 * time.Millisecond,
    },
  }

  r := httptest.NewRequest(http.MethodPost, "/api/cron/run", nil).WithContext(ctx)
  r.Header.Set("x-cron-key", "cron-secret")
  w := httptest.NewRecorder()
  h.Run(w, r)

  require.Equal(t, http.StatusOK, w.Code, w.Body.String())
  assert.Equal(t, float64(2), decode(t, w)["processed"])
  assert.Equal(t, 2, scraper.calls)

  for _, creator := range []*models.Creator{kat, leo} {
    var total int64
    require.NoError(t, apiContext.Db.Model(&models.Post{}).Where("creator_id = ?", creator.ID).Count(&total).Error)
    assert.Equal(t, int64(1), total, creator.Username)
  }
}

func TestCronRunDatabaseDown(t *testing.T) {
  apiContext := newTestContext(t)
  scraper := &stubScraper{}
  h := &CronHandler{
    ApiContext: apiContext,
    Secret:     "cron-secret",
    Repository: &repositories.SyncRepository{
      Db:        apiContext.Db,
      Scraper:   scraper,
      BatchSize: 1,
    },
  }
  pool, err := apiContext.Db.DB()
  require.NoError(t, err)
  require.NoError(t, pool.Close())

  w := request(t, http.HandlerFunc(h.Run), http.MethodPost, "/api/cron/run", "", map[string]string{"x-cron-key": "cron-secret"})
  assert.Equal(t, http.StatusInternalServerError, w.Code)
  assert.NotEqual(t, "No active TikTok creators found", decode(t, w)["message"])
  assert.Equal(t, 0, scraper.calls)
}
