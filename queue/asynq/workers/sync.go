package workers

import (
  "context"
  "errors"
  "fmt"

  "github.com/goccy/go-json"
  "github.com/hibiken/asynq"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/queue/asynq/jobs"
  "tracker.local/tiktok-dashboard/repositories"
  "tracker.local/tiktok-dashboard/repositories/scrapers"
)

type Sync struct {
  AnsqContext     *common.AnsqServerContext
  Repository      *repositories.SyncRepository
  StatsRepository *repositories.DailyStatsRepository
  CacheRepository *repositories.CacheRepository
}

func NewSync(ansqContext *common.AnsqServerContext) *Sync {
  h := &Sync{
    AnsqContext: ansqContext,
  }
  h.Repository = repositories.NewSyncRepository(
    h.AnsqContext.Db,
    h.AnsqContext.Rdb,
    h.AnsqContext.Nats,
    scrapers.NewTikTokScraper(),
  )
  h.StatsRepository = &repositories.DailyStatsRepository{
    Db: h.AnsqContext.Db,
  }
  h.CacheRepository = &repositories.CacheRepository{
    Rdb: h.AnsqContext.Rdb,
    Ctx: h.AnsqContext.Ctx,
  }
  return h
}

func (h *Sync) Run(ctx context.Context, t *asynq.Task) error {
  id, _ := asynq.GetTaskID(ctx)
  result, err := h.Repository.Run(ctx)
  if errors.Is(err, repositories.ErrSyncRunning) {
    log.Warn().Str("task_id", id).Msg("sync already running, job skipped")
    return nil
  }
  if err != nil {
    return err
  }
  log.Info().
    Str("task_id", id).
    Str("run_id", result.RunID).
    Int64("processed", result.Processed).
    Int64("errors", result.Errors).
    Msg("sync job completed")
  return nil
}

func (h *Sync) Stats(ctx context.Context, t *asynq.Task) error {
  var payload jobs.StatsDailyPayload
  if err := json.Unmarshal(t.Payload(), &payload); err != nil {
    return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
  }

  count, err := h.StatsRepository.Rebuild(payload.CreatorIDs)
  if err != nil {
    return err
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)
  log.Info().Int("creators", len(payload.CreatorIDs)).Int("rows", count).Msg("daily stats rebuilt")
  return nil
}

func (h *Sync) Register() error {
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_SYNC_RUN, h.Run)
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_STATS_ROLL, h.Stats)
  return nil
}
