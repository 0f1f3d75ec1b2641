package repositories

import (
  "time"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

type SyncLogsRepository struct {
  Db *gorm.DB
}

func (r *SyncLogsRepository) Queue(runID string, creators []*models.Creator, now time.Time) ([]*models.SyncLog, error) {
  logs := make([]*models.SyncLog, len(creators))
  for i, creator := range creators {
    logs[i] = &models.SyncLog{
      ID:        xid.New().String(),
      RunID:     runID,
      CreatorID: creator.ID,
      Platform:  config.PLATFORM_TIKTOK,
      SyncType:  config.SYNC_TYPE_POSTS,
      Status:    config.SYNC_STATUS_QUEUED,
      Details: common.JSONMap(map[string]interface{}{
        "username": creator.Username,
      }),
      StartedAt: now.UTC(),
    }
  }
  if len(logs) == 0 {
    return logs, nil
  }
  return logs, r.Db.Create(&logs).Error
}

func (r *SyncLogsRepository) Fail(logs []*models.SyncLog, message string, now time.Time) error {
  completedAt := now.UTC()
  return r.Db.Model(&models.SyncLog{}).Where("id IN ?", ids(logs)).Updates(map[string]interface{}{
    "status":        config.SYNC_STATUS_ERROR,
    "error_message": message,
    "completed_at":  &completedAt,
  }).Error
}

// Succeed marks each log done with the number of items stored for its creator.
func (r *SyncLogsRepository) Succeed(logs []*models.SyncLog, processed map[string]int64, items int, now time.Time) error {
  completedAt := now.UTC()
  return r.Db.Transaction(func(tx *gorm.DB) error {
    for _, log := range logs {
      details := log.Details
      if details == nil {
        details = map[string]interface{}{}
      }
      details["items_received"] = items
      err := tx.Model(log).Updates(map[string]interface{}{
        "status":            config.SYNC_STATUS_SUCCESS,
        "records_processed": processed[log.CreatorID],
        "records_created":   processed[log.CreatorID],
        "details":           details,
        "completed_at":      &completedAt,
      }).Error
      if err != nil {
        return err
      }
    }
    return nil
  })
}

func (r *SyncLogsRepository) Listings(runID string) []*models.SyncLog {
  var logs []*models.SyncLog
  query := r.Db.Order("started_at DESC, id ASC")
  if runID != "" {
    query.Where("run_id", runID)
  }
  query.Limit(200).Find(&logs)
  return logs
}

func ids(logs []*models.SyncLog) []string {
  data := make([]string, len(logs))
  for i, log := range logs {
    data[i] = log.ID
  }
  return data
}
