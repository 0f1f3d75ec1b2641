package repositories

import (
  "github.com/rs/xid"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/models"
)

type DailyStatsRepository struct {
  Db *gorm.DB
}

func (r *DailyStatsRepository) Listings(creatorID string) []*models.CreatorStatDaily {
  var stats []*models.CreatorStatDaily
  r.Db.Where("creator_id", creatorID).Order("date ASC").Find(&stats)
  return stats
}

// Rebuild recomputes the per-day rollups of the creators from their posts and latest snapshots.
func (r *DailyStatsRepository) Rebuild(creatorIDs []string) (count int, err error) {
  if len(creatorIDs) == 0 {
    return 0, nil
  }
  rows, err := latestPostRows(r.Db, map[string]interface{}{
    "creator_ids": creatorIDs,
  })
  if err != nil {
    return 0, err
  }

  type key struct {
    creatorID string
    date      string
  }
  days := make(map[key]*models.CreatorStatDaily)
  var stats []*models.CreatorStatDaily
  for _, row := range rows {
    k := key{row.CreatorID, row.PublishedAt.Format(common.DateLayout)}
    stat, ok := days[k]
    if !ok {
      stat = &models.CreatorStatDaily{
        ID:        xid.New().String(),
        CreatorID: k.creatorID,
        Date:      k.date,
      }
      days[k] = stat
      stats = append(stats, stat)
    }
    stat.PostsCount++
    stat.TotalViews += value(row.Views)
    stat.TotalLikes += value(row.Likes)
    stat.TotalComments += value(row.Comments)
    stat.TotalShares += value(row.Shares)
  }

  err = r.Db.Transaction(func(tx *gorm.DB) error {
    if err := tx.Where("creator_id IN ?", creatorIDs).Delete(&models.CreatorStatDaily{}).Error; err != nil {
      return err
    }
    if len(stats) == 0 {
      return nil
    }
    return tx.CreateInBatches(stats, 100).Error
  })
  if err != nil {
    return 0, err
  }
  return len(stats), nil
}
