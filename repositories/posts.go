package repositories

import (
  "errors"

  "github.com/rs/xid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "tracker.local/tiktok-dashboard/models"
)

type PostsRepository struct {
  Db *gorm.DB
}

func (r *PostsRepository) Find(id string) (entity *models.Post, err error) {
  err = r.Db.First(&entity, "id=?", id).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *PostsRepository) Get(creatorID string, externalID string, platform string) (entity *models.Post, err error) {
  err = r.Db.Where(
    "creator_id = ? AND external_id = ? AND platform = ?",
    creatorID,
    externalID,
    platform,
  ).Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *PostsRepository) Count(conditions map[string]interface{}) int64 {
  var total int64
  query := r.Db.Model(&models.Post{})
  if _, ok := conditions["platform"]; ok {
    query.Where("platform", conditions["platform"].(string))
  }
  if _, ok := conditions["creator_id"]; ok {
    query.Where("creator_id", conditions["creator_id"].(string))
  }
  query.Count(&total)
  return total
}

// Upsert inserts the post or refreshes its content on (creator_id, external_id, platform) and returns the stored id.
func (r *PostsRepository) Upsert(post *models.Post) (id string, err error) {
  if post.ID == "" {
    post.ID = xid.New().String()
  }
  err = r.Db.Clauses(clause.OnConflict{
    Columns: []clause.Column{
      {Name: "creator_id"},
      {Name: "external_id"},
      {Name: "platform"},
    },
    DoUpdates: clause.AssignmentColumns([]string{
      "caption",
      "media_url",
      "thumbnail_url",
      "post_url",
      "published_at",
      "updated_at",
    }),
  }).Create(post).Error
  if err != nil {
    return
  }

  stored, err := r.Get(post.CreatorID, post.ExternalID, post.Platform)
  if err != nil {
    return
  }
  return stored.ID, nil
}

// Purge removes every post of the creators together with their snapshots and daily rollups.
func (r *PostsRepository) Purge(creatorIDs []string) error {
  if len(creatorIDs) == 0 {
    return nil
  }
  return r.Db.Transaction(func(tx *gorm.DB) error {
    posts := func() *gorm.DB {
      return tx.Model(&models.Post{}).Select("id").Where("creator_id IN ?", creatorIDs)
    }
    if err := tx.Where("post_id IN (?)", posts()).Delete(&models.PostStat{}).Error; err != nil {
      return err
    }
    if err := tx.Where("post_id IN (?)", posts()).Delete(&models.PostStatOriginal{}).Error; err != nil {
      return err
    }
    if err := tx.Where("creator_id IN ?", creatorIDs).Delete(&models.CreatorStatDaily{}).Error; err != nil {
      return err
    }
    return tx.Where("creator_id IN ?", creatorIDs).Delete(&models.Post{}).Error
  })
}
