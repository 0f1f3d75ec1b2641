package commands

import (
  "context"
  "fmt"
  "net/http"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/nats-io/nats.go"
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  v1 "tracker.local/tiktok-dashboard/api/v1"
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/models"
)

type ApiHandler struct {
  Db    *gorm.DB
  Rdb   *redis.Client
  Nats  *nats.Conn
  Asynq *asynq.Client
  Ctx   context.Context
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "serve the dashboard api",
    Before: func(c *cli.Context) error {
      h = ApiHandler{
        Db:   common.NewDB(),
        Ctx:  context.Background(),
        Nats: common.NewOptionalNats(),
      }
      h.Rdb = common.NewOptionalRedis(h.Ctx)
      if common.GetEnvString("ASYNQ_REDIS_ADDR") != "" {
        h.Asynq = common.NewAsynqClient()
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ApiHandler) Run() error {
  if err := models.AutoMigrate(h.Db); err != nil {
    return err
  }

  apiContext := &common.ApiContext{
    Db:    h.Db,
    Rdb:   h.Rdb,
    Ctx:   h.Ctx,
    Nats:  h.Nats,
    Asynq: h.Asynq,
  }

  addr := fmt.Sprintf(
    "%v:%v",
    common.GetEnvStringOr("SCRAPER_API_HOST", "127.0.0.1"),
    common.GetEnvStringOr("SCRAPER_API_PORT", "3000"),
  )
  log.Info().Str("addr", addr).Msg("api running...")

  return http.ListenAndServe(addr, v1.NewRouter(apiContext))
}
