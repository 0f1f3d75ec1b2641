package repositories

import (
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestDailyStatsRebuild(t *testing.T) {
  db := newTestDB(t)
  kat := seedCreator(t, db, "kat.picks")
  leo := seedCreator(t, db, "leo.picks")

  first := seedPost(t, db, kat, testNow.AddDate(0, 0, -1), testNow)
  seedStat(t, db, first, 10, 1, testNow.Add(-2*time.Hour))
  seedStat(t, db, first, 40, 4, testNow.Add(-time.Hour))
  second := seedPost(t, db, kat, testNow.AddDate(0, 0, -1).Add(time.Hour), testNow)
  seedStat(t, db, second, 60, 6, testNow)
  seedPost(t, db, kat, testNow, testNow)
  other := seedPost(t, db, leo, testNow, testNow)
  seedStat(t, db, other, 5, 0, testNow)

  repository := &DailyStatsRepository{Db: db}
  count, err := repository.Rebuild([]string{kat.ID})
  require.NoError(t, err)
  assert.Equal(t, 2, count)

  daily := repository.Listings(kat.ID)
  require.Len(t, daily, 2)
  assert.Equal(t, "2026-03-09", daily[0].Date)
  assert.Equal(t, int64(2), daily[0].PostsCount)
  assert.Equal(t, int64(100), daily[0].TotalViews)
  assert.Equal(t, int64(10), daily[0].TotalLikes)
  assert.Equal(t, "2026-03-10", daily[1].Date)
  assert.Equal(t, int64(1), daily[1].PostsCount)
  assert.Equal(t, int64(0), daily[1].TotalViews)
  assert.Empty(t, repository.Listings(leo.ID))

  count, err = repository.Rebuild([]string{kat.ID})
  require.NoError(t, err)
  assert.Equal(t, 2, count)
  assert.Len(t, repository.Listings(kat.ID), 2)

  count, err = repository.Rebuild(nil)
  require.NoError(t, err)
  assert.Equal(t, 0, count)
}
