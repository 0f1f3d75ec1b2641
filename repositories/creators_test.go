package repositories

import (
  "errors"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestCreatorsCreate(t *testing.T) {
  db := newTestDB(t)
  repository := &CreatorsRepository{Db: db}

  creator, err := repository.Create("@kat.picks", "", "")
  require.NoError(t, err)
  assert.Equal(t, "kat.picks", creator.Username)
  assert.Equal(t, "kat.picks", creator.DisplayName)
  assert.Equal(t, "kat.picks", creator.ExternalID)
  assert.Equal(t, "https://www.tiktok.com/@kat.picks", creator.ProfileUrl)
  assert.True(t, creator.IsActive)

  _, err = repository.Create("kat.picks", "Kat", "")
  assert.True(t, errors.Is(err, ErrConflict))

  found, err := repository.Get("@kat.picks")
  require.NoError(t, err)
  assert.Equal(t, creator.ID, found.ID)

  _, err = repository.Get("nobody")
  assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreatorsActive(t *testing.T) {
  db := newTestDB(t)
  repository := &CreatorsRepository{Db: db}

  seedCreator(t, db, "b.picks")
  seedCreator(t, db, "a.picks")
  inactive := seedCreator(t, db, "c.picks")
  require.NoError(t, repository.Update(inactive, "is_active", false))

  active, err := repository.Active("tiktok")
  require.NoError(t, err)
  require.Len(t, active, 2)
  assert.Equal(t, "a.picks", active[0].Username)
  assert.Equal(t, "b.picks", active[1].Username)
  assert.Equal(t, int64(2), repository.Count(map[string]interface{}{"is_active": true}))
  assert.Equal(t, int64(3), repository.Count(map[string]interface{}{}))
}

func TestCreatorsRename(t *testing.T) {
  db := newTestDB(t)
  repository := &CreatorsRepository{Db: db}

  creator := seedCreator(t, db, "old.picks")
  seedCreator(t, db, "taken.picks")
  post := seedPost(t, db, creator, testNow, testNow)

  renamed, err := repository.Rename("old.picks", "@new.picks")
  require.NoError(t, err)
  assert.Equal(t, creator.ID, renamed.ID)
  assert.Equal(t, "new.picks", renamed.Username)
  assert.Equal(t, "new.picks", renamed.DisplayName)
  assert.Equal(t, "https://www.tiktok.com/@new.picks", renamed.ProfileUrl)

  stored, err := (&PostsRepository{Db: db}).Find(post.ID)
  require.NoError(t, err)
  assert.Equal(t, creator.ID, stored.CreatorID)

  _, err = repository.Rename("new.picks", "taken.picks")
  assert.True(t, errors.Is(err, ErrConflict))

  _, err = repository.Rename("missing", "other")
  assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreatorsListings(t *testing.T) {
  db := newTestDB(t)
  repository := &CreatorsRepository{Db: db}

  quiet := seedCreator(t, db, "quiet.picks")
  require.NoError(t, repository.Update(quiet, "created_at", testNow.AddDate(0, 0, -30)))
  busy := seedCreator(t, db, "busy.picks")
  seedPost(t, db, busy, testNow.AddDate(0, 0, -3), testNow)
  seedPost(t, db, busy, testNow.AddDate(0, 0, -1), testNow)

  items, err := repository.Listings(50)
  require.NoError(t, err)
  require.Len(t, items, 2)
  assert.Equal(t, busy.ID, items[0].ID)
  assert.Equal(t, int64(2), items[0].PostsCount)
  require.NotNil(t, items[0].LastPostAt)
  assert.True(t, items[0].LastPostAt.Equal(testNow.AddDate(0, 0, -1)))
  assert.Equal(t, quiet.ID, items[1].ID)
  assert.Nil(t, items[1].LastPostAt)

  items, err = repository.Listings(1)
  require.NoError(t, err)
  assert.Len(t, items, 1)
}
