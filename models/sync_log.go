package models

import (
  "time"

  "gorm.io/datatypes"
)

type SyncLog struct {
  ID               string            `gorm:"size:20;primaryKey" json:"id"`
  RunID            string            `gorm:"size:20;not null;index" json:"run_id"`
  CreatorID        string            `gorm:"size:20;not null;index" json:"creator_id"`
  Platform         string            `gorm:"size:20;not null" json:"platform"`
  SyncType         string            `gorm:"size:20;not null" json:"sync_type"`
  Status           string            `gorm:"size:20;not null;index" json:"status"`
  ErrorMessage     string            `gorm:"type:text;not null;default:''" json:"error_message"`
  RecordsProcessed int64             `gorm:"not null;default:0" json:"records_processed"`
  RecordsCreated   int64             `gorm:"not null;default:0" json:"records_created"`
  Details          datatypes.JSONMap `json:"details"`
  StartedAt        time.Time         `gorm:"not null" json:"started_at"`
  CompletedAt      *time.Time        `json:"completed_at"`
}

func (m *SyncLog) TableName() string {
  return "sync_logs"
}
