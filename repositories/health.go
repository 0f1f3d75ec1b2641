package repositories

import (
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/models"
)

var healthTables = []string{
  "creators",
  "posts",
  "post_stats",
  "creator_stats_daily",
  "sync_logs",
}

type HealthRepository struct {
  Db *gorm.DB
}

type CreatorSample struct {
  ID          string `json:"id"`
  Username    string `json:"username"`
  DisplayName string `json:"display_name"`
  Followers   int64  `json:"followers"`
}

func (r *HealthRepository) Ping() error {
  db, err := r.Db.DB()
  if err != nil {
    return err
  }
  return db.Ping()
}

func (r *HealthRepository) Tables() ([]string, error) {
  return r.Db.Migrator().GetTables()
}

// Counts reports nil for a table that cannot be counted.
func (r *HealthRepository) Counts() map[string]*int64 {
  counts := make(map[string]*int64, len(healthTables))
  for _, table := range healthTables {
    var total int64
    if err := r.Db.Table(table).Count(&total).Error; err != nil {
      counts[table] = nil
      continue
    }
    counts[table] = &total
  }
  return counts
}

func (r *HealthRepository) Samples(limit int) []*CreatorSample {
  var creators []*models.Creator
  if err := r.Db.Select([]string{"id", "username", "display_name", "follower_count"}).Limit(limit).Find(&creators).Error; err != nil {
    return []*CreatorSample{}
  }
  samples := make([]*CreatorSample, len(creators))
  for i, creator := range creators {
    samples[i] = &CreatorSample{
      ID:          creator.ID,
      Username:    creator.Username,
      DisplayName: creator.DisplayName,
      Followers:   creator.FollowerCount,
    }
  }
  return samples
}
