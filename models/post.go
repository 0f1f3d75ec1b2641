package models

import (
  "time"
)

type Post struct {
  ID           string    `gorm:"size:20;primaryKey" json:"id"`
  CreatorID    string    `gorm:"size:20;not null;uniqueIndex:idx_posts_identity,priority:1" json:"creator_id"`
  ExternalID   string    `gorm:"size:64;not null;uniqueIndex:idx_posts_identity,priority:2" json:"external_id"`
  Platform     string    `gorm:"size:20;not null;default:'tiktok';uniqueIndex:idx_posts_identity,priority:3" json:"platform"`
  ContentType  string    `gorm:"size:20;not null;default:'video'" json:"content_type"`
  Caption      string    `gorm:"type:text;not null" json:"caption"`
  MediaUrl     string    `gorm:"size:500;not null;default:''" json:"media_url"`
  ThumbnailUrl string    `gorm:"size:1000;not null;default:''" json:"thumbnail_url"`
  PostUrl      string    `gorm:"size:500;not null;default:''" json:"post_url"`
  PublishedAt  time.Time `gorm:"not null;index" json:"published_at"`
  CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
  UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (m *Post) TableName() string {
  return "posts"
}
