package repositories

import (
  "errors"
  "time"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/models"
)

type PostStatsRepository struct {
  Db *gorm.DB
}

type StatValues struct {
  Views    int64 `json:"views"`
  Likes    int64 `json:"likes"`
  Comments int64 `json:"comments"`
  Shares   int64 `json:"shares"`
}

func (r *PostStatsRepository) Latest(postID string) (entity *models.PostStat, err error) {
  err = r.Db.Where("post_id", postID).Order("recorded_at DESC, id DESC").Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *PostStatsRepository) Original(postID string) (entity *models.PostStatOriginal, err error) {
  err = r.Db.Where("post_id", postID).Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *PostStatsRepository) Create(postID string, values *StatValues, recordedAt time.Time) (entity *models.PostStat, err error) {
  entity = &models.PostStat{
    ID:             xid.New().String(),
    PostID:         postID,
    Views:          values.Views,
    Likes:          values.Likes,
    Comments:       values.Comments,
    Shares:         values.Shares,
    EngagementRate: common.EngagementRate(values.Views, values.Likes, values.Comments, values.Shares),
    RecordedAt:     recordedAt.UTC(),
  }
  err = r.Db.Create(entity).Error
  return
}

// Edit overwrites the latest snapshot. The imported values are kept once so the edit can be undone.
func (r *PostStatsRepository) Edit(postID string, values *StatValues) (original *StatValues, err error) {
  err = r.Db.Transaction(func(tx *gorm.DB) error {
    repository := &PostStatsRepository{Db: tx}
    stat, err := repository.Latest(postID)
    if err != nil {
      return err
    }
    original = &StatValues{
      Views:    stat.Views,
      Likes:    stat.Likes,
      Comments: stat.Comments,
      Shares:   stat.Shares,
    }
    if _, err := repository.Original(postID); errors.Is(err, ErrNotFound) {
      if err := tx.Create(&models.PostStatOriginal{
        ID:       xid.New().String(),
        PostID:   postID,
        Views:    stat.Views,
        Likes:    stat.Likes,
        Comments: stat.Comments,
        Shares:   stat.Shares,
      }).Error; err != nil {
        return err
      }
    } else if err != nil {
      return err
    }
    return repository.apply(stat, values)
  })
  return
}

func (r *PostStatsRepository) Undo(postID string) (restored *StatValues, err error) {
  err = r.Db.Transaction(func(tx *gorm.DB) error {
    repository := &PostStatsRepository{Db: tx}
    original, err := repository.Original(postID)
    if err != nil {
      if errors.Is(err, ErrNotFound) {
        return ErrNoOriginal
      }
      return err
    }
    stat, err := repository.Latest(postID)
    if err != nil {
      return err
    }
    restored = &StatValues{
      Views:    original.Views,
      Likes:    original.Likes,
      Comments: original.Comments,
      Shares:   original.Shares,
    }
    return repository.apply(stat, restored)
  })
  return
}

func (r *PostStatsRepository) apply(stat *models.PostStat, values *StatValues) error {
  return r.Db.Model(stat).Updates(map[string]interface{}{
    "views":           values.Views,
    "likes":           values.Likes,
    "comments":        values.Comments,
    "shares":          values.Shares,
    "engagement_rate": common.EngagementRate(values.Views, values.Likes, values.Comments, values.Shares),
  }).Error
}
