package jobs

import (
  "github.com/goccy/go-json"
  "github.com/hibiken/asynq"

  "tracker.local/tiktok-dashboard/config"
)

type StatsDailyPayload struct {
  CreatorIDs []string `json:"creator_ids"`
}

type Sync struct{}

// Run carries no payload so that asynq.Unique sees every sync request as the same task.
func (h *Sync) Run() (*asynq.Task, error) {
  return asynq.NewTask(config.ASYNQ_JOBS_SYNC_RUN, nil), nil
}

func (h *Sync) Stats(creatorIDs []string) (*asynq.Task, error) {
  payload, err := json.Marshal(StatsDailyPayload{creatorIDs})
  if err != nil {
    return nil, err
  }
  return asynq.NewTask(config.ASYNQ_JOBS_STATS_ROLL, payload), nil
}
