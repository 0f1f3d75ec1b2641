package models

import (
  "time"
)

type Creator struct {
  ID            string    `gorm:"size:20;primaryKey" json:"id"`
  ExternalID    string    `gorm:"size:64;not null;default:'';index" json:"external_id"`
  Platform      string    `gorm:"size:20;not null;default:'tiktok';index:idx_creators_platform,priority:1" json:"platform"`
  Username      string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
  DisplayName   string    `gorm:"size:200;not null;default:''" json:"display_name"`
  FollowerCount int64     `gorm:"not null;default:0" json:"follower_count"`
  AvatarUrl     string    `gorm:"size:500;not null;default:''" json:"avatar_url"`
  ProfileUrl    string    `gorm:"size:500;not null;default:''" json:"profile_url"`
  IsActive      bool      `gorm:"not null;index:idx_creators_platform,priority:2" json:"is_active"`
  CreatedAt     time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (m *Creator) TableName() string {
  return "creators"
}
