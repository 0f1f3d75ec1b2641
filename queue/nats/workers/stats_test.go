package workers

import (
  "context"
  "testing"
  "time"

  "github.com/goccy/go-json"
  "github.com/nats-io/nats.go"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories"
)

func TestStatsApply(t *testing.T) {
  db := common.NewMemoryDB()
  require.NoError(t, models.AutoMigrate(db))
  t.Cleanup(func() {
    if pool, err := db.DB(); err == nil {
      pool.Close()
    }
  })

  creator, err := (&repositories.CreatorsRepository{Db: db}).Create("kat.picks", "", "")
  require.NoError(t, err)
  publishedAt := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
  id, err := (&repositories.PostsRepository{Db: db}).Upsert(&models.Post{
    CreatorID:   creator.ID,
    ExternalID:  "v1",
    Platform:    config.PLATFORM_TIKTOK,
    ContentType: config.CONTENT_TYPE_VIDEO,
    PostUrl:     "https://www.tiktok.com/@kat.picks/video/v1",
    PublishedAt: publishedAt,
  })
  require.NoError(t, err)
  _, err = (&repositories.PostStatsRepository{Db: db}).Create(id, &repositories.StatValues{Views: 70}, publishedAt)
  require.NoError(t, err)

  h := NewStats(&common.NatsContext{Db: db, Ctx: context.Background()})

  t.Run("invalid payload", func(t *testing.T) {
    h.Apply(&nats.Msg{Data: []byte("nope")})
    assert.Empty(t, h.Repository.Listings(creator.ID))
  })

  t.Run("rebuild", func(t *testing.T) {
    data, err := json.Marshal(&repositories.SyncCompletedPayload{
      RunID:      "run-1",
      CreatorIDs: []string{creator.ID},
    })
    require.NoError(t, err)
    h.Apply(&nats.Msg{Subject: config.NATS_SYNC_COMPLETED, Data: data})

    daily := h.Repository.Listings(creator.ID)
    require.Len(t, daily, 1)
    assert.Equal(t, "2026-03-09", daily[0].Date)
    assert.Equal(t, int64(70), daily[0].TotalViews)
  })
}
