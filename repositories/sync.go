package repositories

import (
  "context"
  "fmt"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/goccy/go-json"
  "github.com/nats-io/nats.go"
  "github.com/rs/xid"
  "github.com/rs/zerolog/log"
  "github.com/tidwall/gjson"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/metrics"
  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories/scrapers"
)

type SyncRepository struct {
  Db         *gorm.DB
  Rdb        *redis.Client
  Nats       *nats.Conn
  Scraper    scrapers.Scraper
  BatchSize  int
  BatchSleep time.Duration
  Clock      func() time.Time
}

type SyncResult struct {
  RunID      string   `json:"run_id"`
  Creators   int      `json:"creators"`
  Processed  int64    `json:"processed"`
  Errors     int64    `json:"errors"`
  Batches    int      `json:"batches"`
  Items      int      `json:"items"`
  CreatorIDs []string `json:"creator_ids"`
}

type SyncCompletedPayload struct {
  RunID      string   `json:"run_id"`
  CreatorIDs []string `json:"creator_ids"`
  Processed  int64    `json:"processed"`
  Errors     int64    `json:"errors"`
}

type batchResult struct {
  items     int
  processed map[string]int64
  total     int64
  errors    int64
}

func NewSyncRepository(db *gorm.DB, rdb *redis.Client, nc *nats.Conn, scraper scrapers.Scraper) *SyncRepository {
  return &SyncRepository{
    Db:         db,
    Rdb:        rdb,
    Nats:       nc,
    Scraper:    scraper,
    BatchSize:  common.GetEnvIntOr("SYNC_BATCH_SIZE", config.SYNC_BATCH_SIZE),
    BatchSleep: common.GetEnvDuration("SYNC_BATCH_SLEEP", config.SYNC_BATCH_SLEEP),
  }
}

func (r *SyncRepository) now() time.Time {
  if r.Clock != nil {
    return r.Clock().UTC()
  }
  return time.Now().UTC()
}

// Run purges every stored post of the active creators and reloads them from the scraper batch by batch.
// A failing batch is logged and counted, it never stops the run.
func (r *SyncRepository) Run(ctx context.Context) (result *SyncResult, err error) {
  if r.Rdb != nil {
    mutex := common.NewMutex(r.Rdb, ctx, config.LOCKS_SYNC_RUN)
    if !mutex.Lock(config.SYNC_LOCK_TTL) {
      return nil, ErrSyncRunning
    }
    defer mutex.Unlock()
  }

  started := time.Now()
  defer func() {
    status := "success"
    if err != nil {
      status = "error"
    }
    metrics.SyncRunsTotal.WithLabelValues(status).Inc()
    metrics.SyncDuration.Observe(time.Since(started).Seconds())
  }()

  creators, err := (&CreatorsRepository{Db: r.Db}).Active(config.PLATFORM_TIKTOK)
  if err != nil {
    return nil, fmt.Errorf("load creators: %w", err)
  }
  result = &SyncResult{
    RunID:      xid.New().String(),
    Creators:   len(creators),
    CreatorIDs: make([]string, len(creators)),
  }
  if len(creators) == 0 {
    log.Info().Msg("no active tiktok creators found")
    return result, nil
  }
  for i, creator := range creators {
    result.CreatorIDs[i] = creator.ID
  }

  log.Info().Str("run_id", result.RunID).Int("creators", len(creators)).Msg("purging creator data before import")
  if err = (&PostsRepository{Db: r.Db}).Purge(result.CreatorIDs); err != nil {
    return nil, fmt.Errorf("purge: %w", err)
  }

  batches := r.batches(creators)
  result.Batches = len(batches)
  for i, batch := range batches {
    logger := log.With().Str("run_id", result.RunID).Int("batch", i+1).Int("batches", len(batches)).Logger()
    logger.Info().Int("creators", len(batch)).Msg("processing batch")

    outcome, err := r.runBatch(ctx, result.RunID, batch)
    if err != nil {
      logger.Error().Err(err).Msg("batch failed")
      metrics.SyncBatchesTotal.WithLabelValues("error").Inc()
      result.Errors += int64(len(batch))
    } else {
      metrics.SyncBatchesTotal.WithLabelValues("success").Inc()
      logger.Info().Int64("processed", outcome.total).Int64("errors", outcome.errors).Msg("batch completed")
    }
    if outcome != nil {
      result.Items += outcome.items
      result.Processed += outcome.total
      result.Errors += outcome.errors
    }

    // a failed batch moves straight on to the next one
    if err == nil && i < len(batches)-1 && r.BatchSleep > 0 {
      select {
      case <-ctx.Done():
        return result, ctx.Err()
      case <-time.After(r.BatchSleep):
      }
    }
  }

  r.complete(ctx, result)
  log.Info().
    Str("run_id", result.RunID).
    Int64("processed", result.Processed).
    Int64("errors", result.Errors).
    Msg("sync completed")
  return result, nil
}

func (r *SyncRepository) batches(creators []*models.Creator) [][]*models.Creator {
  size := r.BatchSize
  if size <= 0 {
    size = config.SYNC_BATCH_SIZE
  }
  var batches [][]*models.Creator
  for i := 0; i < len(creators); i += size {
    end := i + size
    if end > len(creators) {
      end = len(creators)
    }
    batches = append(batches, creators[i:end])
  }
  return batches
}

func (r *SyncRepository) runBatch(ctx context.Context, runID string, batch []*models.Creator) (*batchResult, error) {
  logs := &SyncLogsRepository{Db: r.Db}
  entries, err := logs.Queue(runID, batch, r.now())
  if err != nil {
    return nil, fmt.Errorf("queue sync logs: %w", err)
  }

  items, err := r.Scraper.RunTikTokScraper(ctx, batch)
  if err != nil {
    logs.Fail(entries, err.Error(), r.now())
    return nil, err
  }

  result := &batchResult{
    items:     len(items),
    processed: make(map[string]int64),
  }
  for _, item := range items {
    creatorID, err := r.importItem(item, batch)
    if err != nil {
      log.Warn().Err(err).Str("item_id", item.Get("id").String()).Msg("item import failed")
      metrics.SyncItemsTotal.WithLabelValues("failed").Inc()
      result.errors++
      continue
    }
    if creatorID == "" {
      continue
    }
    metrics.SyncItemsTotal.WithLabelValues("processed").Inc()
    result.processed[creatorID]++
    result.total++
  }

  if err := logs.Succeed(entries, result.processed, len(items), r.now()); err != nil {
    log.Error().Err(err).Str("run_id", runID).Msg("sync logs update failed")
  }

  if result.total == 0 && len(items) > 0 {
    err := fmt.Errorf("Normalization failed - %d items received but 0 processed", len(items))
    logs.Fail(entries, err.Error(), r.now())
    return result, err
  }
  return result, nil
}

// importItem stores one item and returns the matched creator id, empty when the item was skipped.
func (r *SyncRepository) importItem(item gjson.Result, batch []*models.Creator) (string, error) {
  creator := scrapers.MatchCreator(item, batch)
  if creator == nil {
    log.Warn().
      Str("item_id", item.Get("id").String()).
      Str("author", item.Get("authorMeta.name").String()).
      Str("url", item.Get("webVideoUrl").String()).
      Msg("could not find creator for item")
    metrics.SyncItemsTotal.WithLabelValues("unmatched").Inc()
    return "", nil
  }

  normalized, ok := scrapers.NormalizeItem(item, creator.ID, r.now())
  if !ok {
    log.Warn().Str("item_id", item.Get("id").String()).Str("creator", creator.Username).Msg("item rejected by normalization")
    metrics.SyncItemsTotal.WithLabelValues("rejected").Inc()
    return "", nil
  }

  var postID string
  err := r.Db.Transaction(func(tx *gorm.DB) error {
    id, err := (&PostsRepository{Db: tx}).Upsert(normalized.Post)
    if err != nil {
      return fmt.Errorf("upsert post: %w", err)
    }
    postID = id
    _, err = (&PostStatsRepository{Db: tx}).Create(postID, &StatValues{
      Views:    normalized.Views,
      Likes:    normalized.Likes,
      Comments: normalized.Comments,
      Shares:   normalized.Shares,
    }, r.now())
    if err != nil {
      return fmt.Errorf("insert post stat: %w", err)
    }
    return nil
  })
  if err != nil {
    return "", err
  }
  return creator.ID, nil
}

func (r *SyncRepository) complete(ctx context.Context, result *SyncResult) {
  payload := &SyncCompletedPayload{
    RunID:      result.RunID,
    CreatorIDs: result.CreatorIDs,
    Processed:  result.Processed,
    Errors:     result.Errors,
  }

  published := false
  if r.Nats != nil {
    data, _ := json.Marshal(payload)
    if err := r.Nats.Publish(config.NATS_SYNC_COMPLETED, data); err != nil {
      log.Error().Err(err).Msg("publish sync completed failed")
    } else {
      r.Nats.Flush()
      published = true
    }
  }
  if !published {
    if _, err := (&DailyStatsRepository{Db: r.Db}).Rebuild(result.CreatorIDs); err != nil {
      log.Error().Err(err).Msg("daily stats rebuild failed")
    }
  }

  cache := &CacheRepository{Rdb: r.Rdb, Ctx: ctx}
  cache.Delete(config.REDIS_KEY_DASHBOARD_STATS)
  if r.Rdb != nil {
    data, _ := json.Marshal(result)
    r.Rdb.Set(ctx, config.REDIS_KEY_SYNC_LAST_RUN, data, 0)
  }
}
