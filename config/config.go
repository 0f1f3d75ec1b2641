package config

import "time"

const (
  PLATFORM_TIKTOK     = "tiktok"
  CONTENT_TYPE_VIDEO  = "video"
  SYNC_TYPE_POSTS     = "posts"
  SYNC_STATUS_QUEUED  = "queued"
  SYNC_STATUS_SUCCESS = "success"
  SYNC_STATUS_ERROR   = "error"
)

const (
  PAYMENT_TARGET_POSTS   = 60
  PAYMENT_AMOUNT         = 500.0
  EXPECTED_POSTS_PER_DAY = 2
  CREATORS_LISTING_LIMIT = 50
)

const (
  SYNC_BATCH_SIZE         = 10
  SYNC_BATCH_SLEEP        = 5 * time.Second
  SYNC_RESULTS_PER_PAGE   = 10
  APIFY_BASE_URL          = "https://api.apify.com/v2"
  APIFY_POLL_INTERVAL     = time.Second
  APIFY_TASK_MAX_ATTEMPTS = 60
  APIFY_ACTS_MAX_ATTEMPTS = 30
  APIFY_WAIT_FOR_FINISH   = 30
)

const (
  REDIS_KEY_DASHBOARD_STATS = "tiktok:dashboard:stats"
  REDIS_KEY_SYNC_LAST_RUN   = "tiktok:sync:last_run"
  LOCKS_SYNC_RUN            = "tiktok:locks:sync:run"
  LOCKS_STATS_DAILY_REBUILD = "tiktok:locks:stats:daily:%v"
  DASHBOARD_CACHE_TTL       = time.Minute
  SYNC_LOCK_TTL             = 30 * time.Minute
)

const (
  ASYNQ_QUEUE_SYNC      = "tiktok.sync"
  ASYNQ_JOBS_SYNC_RUN   = "tiktok:sync:run"
  ASYNQ_JOBS_STATS_ROLL = "tiktok:stats:daily"
)

const (
  NATS_SYNC_COMPLETED = "tiktok.sync.completed"
  NATS_STATS_UPDATED  = "tiktok.stats.updated"
)

const (
  JWT_DEFAULT_SECRET  = "your-super-secret-jwt-key-change-in-production"
  JWT_DEFAULT_EXPIRES = "7d"
  AUTH_COOKIE_NAME    = "token"
  AUTH_COOKIE_MAX_AGE = 604800
)
