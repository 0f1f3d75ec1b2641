package tasks

import (
  "time"

  "github.com/hibiken/asynq"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/queue/asynq/jobs"
)

type SyncTask struct {
  Job         *jobs.Sync
  AnsqContext *common.AnsqClientContext
}

func NewSyncTask(ansqContext *common.AnsqClientContext) *SyncTask {
  return &SyncTask{
    Job:         &jobs.Sync{},
    AnsqContext: ansqContext,
  }
}

// Run enqueues one sync job. A second job of the same kind is rejected while one is pending.
func (t *SyncTask) Run(trigger string) (*asynq.TaskInfo, error) {
  log.Info().Str("trigger", trigger).Msg("tasks sync run")
  job, err := t.Job.Run()
  if err != nil {
    return nil, err
  }
  return t.AnsqContext.Conn.Enqueue(
    job,
    asynq.Queue(config.ASYNQ_QUEUE_SYNC),
    asynq.MaxRetry(0),
    asynq.Timeout(config.SYNC_LOCK_TTL),
    asynq.Unique(config.SYNC_LOCK_TTL),
  )
}

func (t *SyncTask) Stats(creatorIDs []string) (*asynq.TaskInfo, error) {
  log.Info().Int("creators", len(creatorIDs)).Msg("tasks sync stats")
  job, err := t.Job.Stats(creatorIDs)
  if err != nil {
    return nil, err
  }
  return t.AnsqContext.Conn.Enqueue(
    job,
    asynq.Queue(config.ASYNQ_QUEUE_SYNC),
    asynq.MaxRetry(3),
    asynq.Timeout(5*time.Minute),
  )
}
