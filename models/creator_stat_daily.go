package models

type CreatorStatDaily struct {
  ID            string `gorm:"size:20;primaryKey" json:"id"`
  CreatorID     string `gorm:"size:20;not null;uniqueIndex:idx_creator_stats_daily,priority:1" json:"creator_id"`
  Date          string `gorm:"size:10;not null;uniqueIndex:idx_creator_stats_daily,priority:2" json:"date"`
  PostsCount    int64  `gorm:"not null;default:0" json:"posts_count"`
  TotalViews    int64  `gorm:"not null;default:0" json:"total_views"`
  TotalLikes    int64  `gorm:"not null;default:0" json:"total_likes"`
  TotalComments int64  `gorm:"not null;default:0" json:"total_comments"`
  TotalShares   int64  `gorm:"not null;default:0" json:"total_shares"`
}

func (m *CreatorStatDaily) TableName() string {
  return "creator_stats_daily"
}
