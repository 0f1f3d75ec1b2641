package repositories

import (
  "testing"
  "time"

  "github.com/rs/xid"
  "github.com/stretchr/testify/require"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  db := common.NewMemoryDB()
  require.NoError(t, models.AutoMigrate(db))
  t.Cleanup(func() {
    if pool, err := db.DB(); err == nil {
      pool.Close()
    }
  })
  return db
}

func seedCreator(t *testing.T, db *gorm.DB, username string) *models.Creator {
  t.Helper()
  creator, err := (&CreatorsRepository{Db: db}).Create(username, "", "")
  require.NoError(t, err)
  return creator
}

func seedPost(
  t *testing.T,
  db *gorm.DB,
  creator *models.Creator,
  publishedAt time.Time,
  createdAt time.Time,
) *models.Post {
  t.Helper()
  id := xid.New().String()
  post := &models.Post{
    ID:          id,
    CreatorID:   creator.ID,
    ExternalID:  "ext-" + id,
    Platform:    config.PLATFORM_TIKTOK,
    ContentType: config.CONTENT_TYPE_VIDEO,
    Caption:     "caption " + id,
    PostUrl:     "https://www.tiktok.com/@" + creator.Username + "/video/" + id,
    PublishedAt: publishedAt,
    CreatedAt:   createdAt,
    UpdatedAt:   createdAt,
  }
  require.NoError(t, db.Create(post).Error)
  return post
}

func seedStat(t *testing.T, db *gorm.DB, post *models.Post, views int64, likes int64, recordedAt time.Time) {
  t.Helper()
  _, err := (&PostStatsRepository{Db: db}).Create(post.ID, &StatValues{
    Views: views,
    Likes: likes,
  }, recordedAt)
  require.NoError(t, err)
}
