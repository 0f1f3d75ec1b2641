package repositories

import (
  "errors"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "tracker.local/tiktok-dashboard/common"
)

type dashboardFixture struct {
  kat    string
  leo    string
  recent string
  older  string
  today  string
}

func seedDashboard(t *testing.T, repository *DashboardRepository) *dashboardFixture {
  db := repository.Db
  kat := seedCreator(t, db, "kat.picks")
  leo := seedCreator(t, db, "leo.picks")
  idle := seedCreator(t, db, "idle.picks")
  require.NoError(t, (&CreatorsRepository{Db: db}).Update(idle, "is_active", false))

  recent := seedPost(t, db, kat, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, -1))
  seedStat(t, db, recent, 10, 1, testNow.Add(-2*time.Hour))
  seedStat(t, db, recent, 100, 10, testNow.Add(-time.Hour))

  older := seedPost(t, db, kat, testNow.AddDate(0, 0, -10), testNow.AddDate(0, 0, -10))
  seedStat(t, db, older, 50, 5, testNow.AddDate(0, 0, -9))

  today := seedPost(t, db, leo, testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
  seedStat(t, db, today, 300, 30, testNow)

  seedPost(t, db, leo, testNow.Add(-3*time.Hour), testNow.Add(-time.Hour))

  return &dashboardFixture{
    kat:    kat.ID,
    leo:    leo.ID,
    recent: recent.ID,
    older:  older.ID,
    today:  today.ID,
  }
}

func TestDashboardStats(t *testing.T) {
  repository := &DashboardRepository{Db: newTestDB(t)}
  fixture := seedDashboard(t, repository)

  stats, err := repository.Stats(testNow)
  require.NoError(t, err)

  assert.Equal(t, int64(4), stats.TotalPosts)
  assert.Equal(t, int64(2), stats.TotalCreators)
  assert.Equal(t, int64(450), stats.TotalViews)
  assert.Equal(t, int64(45), stats.TotalLikes)

  require.Len(t, stats.TopPosts, 3)
  assert.Equal(t, fixture.today, stats.TopPosts[0].ID)
  assert.Equal(t, int64(300), *stats.TopPosts[0].Views)
  assert.Equal(t, "leo.picks", stats.TopPosts[0].Username)
  assert.Equal(t, fixture.recent, stats.TopPosts[1].ID)
  assert.Equal(t, int64(100), *stats.TopPosts[1].Views)
  assert.Nil(t, stats.TopPosts[2].Views)

  require.Len(t, stats.CreatorStats, 2)
  leo := stats.CreatorStats[0]
  assert.Equal(t, fixture.leo, leo.ID)
  assert.Equal(t, int64(2), leo.PostCount)
  assert.Equal(t, int64(300), leo.TotalViews)
  assert.Equal(t, 300.0, leo.AvgViews)

  kat := stats.CreatorStats[1]
  assert.Equal(t, fixture.kat, kat.ID)
  assert.Equal(t, int64(2), kat.PostCount)
  assert.Equal(t, int64(150), kat.TotalViews)
  assert.Equal(t, int64(15), kat.TotalLikes)
  assert.Equal(t, 75.0, kat.AvgViews)
  assert.Equal(t, int64(100), kat.TotalViews7Days)
  require.Len(t, kat.Activity, 7)
  assert.Equal(t, testNow.Format(common.DateLayout), kat.Activity[6].Date)
  assert.Equal(t, int64(0), kat.Activity[6].Count)
  assert.Equal(t, int64(1), kat.Activity[5].Count)

  require.Len(t, stats.DailyViews.Last7Days, 7)
  assert.Equal(t, int64(300), stats.DailyViews.Last7Days[6].Views)
  assert.Equal(t, int64(100), stats.DailyViews.Last7Days[5].Views)
  require.Len(t, stats.DailyViews.Last30Days, 30)
  assert.Equal(t, int64(50), stats.DailyViews.Last30Days[19].Views)
  assert.Equal(t, testNow.AddDate(0, 0, -10).Format(common.DateLayout), stats.DailyViews.Last30Days[19].Date)
  assert.Len(t, stats.DailyViews.AllTime, 30)
}

func TestDashboardEmpty(t *testing.T) {
  repository := &DashboardRepository{Db: newTestDB(t)}

  stats, err := repository.Stats(testNow)
  require.NoError(t, err)
  assert.Equal(t, int64(0), stats.TotalPosts)
  assert.NotNil(t, stats.TopPosts)
  assert.NotNil(t, stats.CreatorStats)
  assert.Len(t, stats.DailyViews.Last7Days, 7)
}

func TestDashboardTopVideo(t *testing.T) {
  repository := &DashboardRepository{Db: newTestDB(t)}
  fixture := seedDashboard(t, repository)

  video, err := repository.TopVideo(testNow.Format(common.DateLayout))
  require.NoError(t, err)
  assert.Equal(t, fixture.today, video.ID)
  assert.Equal(t, int64(300), video.Views)
  assert.Equal(t, "leo.picks", video.Username)

  _, err = repository.TopVideo("2000-01-01")
  assert.True(t, errors.Is(err, ErrNotFound))
}
