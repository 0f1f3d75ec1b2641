package workers

import (
  "fmt"

  "github.com/goccy/go-json"
  "github.com/nats-io/nats.go"
  "github.com/rs/zerolog/log"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/repositories"
)

type StatsUpdatedPayload struct {
  RunID      string   `json:"run_id"`
  CreatorIDs []string `json:"creator_ids"`
  Rows       int      `json:"rows"`
}

type Stats struct {
  NatsContext     *common.NatsContext
  Repository      *repositories.DailyStatsRepository
  CacheRepository *repositories.CacheRepository
}

func NewStats(natsContext *common.NatsContext) *Stats {
  h := &Stats{
    NatsContext: natsContext,
  }
  h.Repository = &repositories.DailyStatsRepository{
    Db: h.NatsContext.Db,
  }
  h.CacheRepository = &repositories.CacheRepository{
    Rdb: h.NatsContext.Rdb,
    Ctx: h.NatsContext.Ctx,
  }
  return h
}

func (h *Stats) Subscribe() error {
  _, err := h.NatsContext.Conn.Subscribe(config.NATS_SYNC_COMPLETED, h.Apply)
  return err
}

// Apply rebuilds the daily rollups of the creators touched by a finished sync run.
func (h *Stats) Apply(m *nats.Msg) {
  var payload *repositories.SyncCompletedPayload
  if err := json.Unmarshal(m.Data, &payload); err != nil || payload == nil {
    log.Warn().Err(err).Msg("invalid sync completed payload")
    return
  }

  if h.NatsContext.Rdb != nil {
    mutex := common.NewMutex(
      h.NatsContext.Rdb,
      h.NatsContext.Ctx,
      fmt.Sprintf(config.LOCKS_STATS_DAILY_REBUILD, payload.RunID),
    )
    if !mutex.Lock(config.SYNC_LOCK_TTL) {
      return
    }
    defer mutex.Unlock()
  }

  rows, err := h.Repository.Rebuild(payload.CreatorIDs)
  if err != nil {
    log.Error().Err(err).Str("run_id", payload.RunID).Msg("daily stats rebuild failed")
    return
  }
  h.CacheRepository.Delete(config.REDIS_KEY_DASHBOARD_STATS)
  log.Info().Str("run_id", payload.RunID).Int("rows", rows).Msg("daily stats rebuilt")

  if h.NatsContext.Conn == nil {
    return
  }
  data, _ := json.Marshal(&StatsUpdatedPayload{
    RunID:      payload.RunID,
    CreatorIDs: payload.CreatorIDs,
    Rows:       rows,
  })
  h.NatsContext.Conn.Publish(config.NATS_STATS_UPDATED, data)
}
