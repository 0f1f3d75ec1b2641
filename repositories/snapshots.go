package repositories

import (
  "time"

  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/config"
)

// PostRow is a post joined with its creator and its most recent stat snapshot.
type PostRow struct {
  ID           string
  CreatorID    string
  Caption      string
  PostUrl      string
  ThumbnailUrl string
  PublishedAt  time.Time
  CreatedAt    time.Time
  Username     string
  DisplayName  string
  Views        *int64
  Likes        *int64
  Comments     *int64
  Shares       *int64
  Saves        *int64
}

func (r *PostRow) HasStats() bool {
  return r.Views != nil
}

func value(v *int64) int64 {
  if v == nil {
    return 0
  }
  return *v
}

func latestPostRows(db *gorm.DB, conditions map[string]interface{}) ([]*PostRow, error) {
  var rows []*PostRow
  query := db.Table("posts AS p").
    Select([]string{
      "p.id AS id",
      "p.creator_id AS creator_id",
      "p.caption AS caption",
      "p.post_url AS post_url",
      "p.thumbnail_url AS thumbnail_url",
      "p.published_at AS published_at",
      "p.created_at AS created_at",
      "c.username AS username",
      "c.display_name AS display_name",
      "ps.views AS views",
      "ps.likes AS likes",
      "ps.comments AS comments",
      "ps.shares AS shares",
      "ps.saves AS saves",
    }).
    Joins("JOIN creators c ON c.id = p.creator_id").
    Joins("LEFT JOIN post_stats ps ON ps.id = (SELECT s.id FROM post_stats s WHERE s.post_id = p.id ORDER BY s.recorded_at DESC, s.id DESC LIMIT 1)").
    Where("p.platform = ?", config.PLATFORM_TIKTOK)
  if _, ok := conditions["creator_ids"]; ok {
    query.Where("p.creator_id IN ?", conditions["creator_ids"].([]string))
  }
  if err := query.Order("p.published_at ASC").Scan(&rows).Error; err != nil {
    return nil, err
  }
  for _, row := range rows {
    row.PublishedAt = row.PublishedAt.UTC()
    row.CreatedAt = row.CreatedAt.UTC()
  }
  return rows, nil
}

func groupByCreator(rows []*PostRow) map[string][]*PostRow {
  groups := make(map[string][]*PostRow)
  for _, row := range rows {
    groups[row.CreatorID] = append(groups[row.CreatorID], row)
  }
  return groups
}
