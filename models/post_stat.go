package models

import (
  "time"
)

type PostStat struct {
  ID             string    `gorm:"size:20;primaryKey" json:"id"`
  PostID         string    `gorm:"size:20;not null;index:idx_post_stats_latest,priority:1" json:"post_id"`
  Views          int64     `gorm:"not null;default:0" json:"views"`
  Likes          int64     `gorm:"not null;default:0" json:"likes"`
  Comments       int64     `gorm:"not null;default:0" json:"comments"`
  Shares         int64     `gorm:"not null;default:0" json:"shares"`
  Saves          int64     `gorm:"not null;default:0" json:"saves"`
  EngagementRate float64   `gorm:"not null;default:0" json:"engagement_rate"`
  RecordedAt     time.Time `gorm:"not null;index:idx_post_stats_latest,priority:2" json:"recorded_at"`
}

func (m *PostStat) TableName() string {
  return "post_stats"
}

// PostStatOriginal keeps the imported numbers of a snapshot before its first manual edit.
type PostStatOriginal struct {
  ID        string    `gorm:"size:20;primaryKey" json:"id"`
  PostID    string    `gorm:"size:20;not null;uniqueIndex" json:"post_id"`
  Views     int64     `gorm:"not null;default:0" json:"views"`
  Likes     int64     `gorm:"not null;default:0" json:"likes"`
  Comments  int64     `gorm:"not null;default:0" json:"comments"`
  Shares    int64     `gorm:"not null;default:0" json:"shares"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (m *PostStatOriginal) TableName() string {
  return "post_stats_original"
}
