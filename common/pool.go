package common

import (
  "context"
  "fmt"
  "os"
  "path/filepath"
  "strconv"
  "strings"
  "sync"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/nats-io/nats.go"
  "github.com/rs/xid"
  "github.com/rs/zerolog/log"
  "gorm.io/driver/mysql"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "tracker.local/tiktok-dashboard/config"
)

type ApiContext struct {
  Db    *gorm.DB
  Rdb   *redis.Client
  Ctx   context.Context
  Nats  *nats.Conn
  Asynq *asynq.Client
  Clock func() time.Time
  Mux   sync.Mutex
}

func (c *ApiContext) Now() time.Time {
  if c.Clock != nil {
    return c.Clock().UTC()
  }
  return time.Now().UTC()
}

type NatsContext struct {
  Db   *gorm.DB
  Rdb  *redis.Client
  Ctx  context.Context
  Conn *nats.Conn
}

type AnsqServerContext struct {
  Db   *gorm.DB
  Rdb  *redis.Client
  Ctx  context.Context
  Mux  *asynq.ServeMux
  Nats *nats.Conn
}

type AnsqClientContext struct {
  Db   *gorm.DB
  Rdb  *redis.Client
  Ctx  context.Context
  Conn *asynq.Client
  Nats *nats.Conn
}

type Mutex struct {
  rdb   *redis.Client
  ctx   context.Context
  key   string
  value string
}

func NewRedis() *redis.Client {
  return redis.NewClient(&redis.Options{
    Addr:     GetEnvStringOr("REDIS_HOST", "127.0.0.1:6379"),
    Password: GetEnvString("REDIS_PASSWORD"),
    DB:       GetEnvInt("REDIS_DB"),
  })
}

// NewOptionalRedis returns nil when REDIS_HOST is unset or unreachable.
func NewOptionalRedis(ctx context.Context) *redis.Client {
  if GetEnvString("REDIS_HOST") == "" {
    return nil
  }
  rdb := NewRedis()
  if err := rdb.Ping(ctx).Err(); err != nil {
    log.Warn().Err(err).Msg("redis unavailable, cache and locks disabled")
    rdb.Close()
    return nil
  }
  return rdb
}

func gormConfig() *gorm.Config {
  return &gorm.Config{
    Logger: logger.Default.LogMode(logger.Silent),
    NowFunc: func() time.Time {
      return time.Now().UTC()
    },
  }
}

func NewDB() *gorm.DB {
  driver := GetEnvStringOr("DB_DRIVER", "sqlite")
  dsn := GetEnvString("DB_DSN")

  var dialector gorm.Dialector
  switch driver {
  case "postgres":
    dialector = postgres.Open(dsn)
  case "mysql":
    dialector = mysql.Open(dsn)
  case "memory":
    return NewMemoryDB()
  default:
    if dsn == "" {
      dsn = "data/tracker.db"
    }
    os.MkdirAll(filepath.Dir(dsn), 0755)
    dialector = sqlite.Open(fmt.Sprintf("%v?_foreign_keys=on&_busy_timeout=5000", dsn))
  }

  db, err := gorm.Open(dialector, gormConfig())
  if err != nil && driver == "sqlite" {
    log.Warn().Err(err).Str("dsn", dsn).Msg("sqlite unavailable, falling back to in-memory store")
    return NewMemoryDB()
  }
  if err != nil {
    panic(err)
  }

  pool, err := db.DB()
  if err != nil {
    panic(err)
  }
  pool.SetMaxIdleConns(10)
  pool.SetMaxOpenConns(50)
  pool.SetConnMaxLifetime(5 * time.Minute)

  return db
}

// NewMemoryDB opens a private shared-cache sqlite database that lives as long as the pool.
func NewMemoryDB() *gorm.DB {
  dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared&_foreign_keys=on", xid.New().String())
  db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
  if err != nil {
    panic(err)
  }
  pool, err := db.DB()
  if err != nil {
    panic(err)
  }
  pool.SetMaxOpenConns(1)
  pool.SetConnMaxLifetime(0)
  return db
}

func NewAsynqServer() *asynq.Server {
  rdb := asynq.RedisClientOpt{
    Addr: GetEnvString("ASYNQ_REDIS_ADDR"),
    DB:   GetEnvInt("ASYNQ_REDIS_DB"),
  }
  queues := make(map[string]int)
  for _, item := range GetEnvArray("ASYNQ_QUEUE") {
    data := strings.Split(item, ",")
    weight := 1
    if len(data) > 1 {
      weight, _ = strconv.Atoi(data[1])
    }
    queues[data[0]] = weight
  }
  if len(queues) == 0 {
    queues[config.ASYNQ_QUEUE_SYNC] = 1
  }
  return asynq.NewServer(rdb, asynq.Config{
    Concurrency: GetEnvIntOr("ASYNQ_CONCURRENCY", 1),
    Queues:      queues,
  })
}

func NewAsynqClient() *asynq.Client {
  return asynq.NewClient(asynq.RedisClientOpt{
    Addr: GetEnvString("ASYNQ_REDIS_ADDR"),
    DB:   GetEnvInt("ASYNQ_REDIS_DB"),
  })
}

func NewNats() *nats.Conn {
  nc, err := nats.Connect(
    GetEnvStringOr("NATS_URL", nats.DefaultURL),
    nats.Token(GetEnvString("NATS_TOKEN")),
  )
  if err != nil {
    panic(err)
  }
  return nc
}

// NewOptionalNats returns nil when NATS_URL is unset or the server refuses the connection.
func NewOptionalNats() *nats.Conn {
  if GetEnvString("NATS_URL") == "" {
    return nil
  }
  nc, err := nats.Connect(GetEnvString("NATS_URL"), nats.Token(GetEnvString("NATS_TOKEN")))
  if err != nil {
    log.Warn().Err(err).Msg("nats unavailable, events disabled")
    return nil
  }
  return nc
}

func NewMutex(
  rdb *redis.Client,
  ctx context.Context,
  key string,
) *Mutex {
  return &Mutex{
    rdb:   rdb,
    ctx:   ctx,
    key:   key,
    value: xid.New().String(),
  }
}

func (m *Mutex) Lock(ttl time.Duration) bool {
  result, err := m.rdb.SetNX(
    m.ctx,
    m.key,
    m.value,
    ttl,
  ).Result()
  if err != nil {
    return false
  }
  return result
}

func (m *Mutex) Unlock() {
  script := redis.NewScript(`
  if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
  else
    return 0
  end
  `)
  script.Run(context.WithoutCancel(m.ctx), m.rdb, []string{m.key}, m.value).Result()
}
