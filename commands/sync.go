package commands

import (
  "context"
  "os"
  "os/signal"
  "syscall"

  "github.com/go-redis/redis/v8"
  "github.com/nats-io/nats.go"
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
  "tracker.local/tiktok-dashboard/repositories/scrapers"
)

type SyncHandler struct {
  Db         *gorm.DB
  Rdb        *redis.Client
  Nats       *nats.Conn
  Ctx        context.Context
  Repository *repositories.SyncRepository
}

func NewSyncCommand() *cli.Command {
  var h SyncHandler
  return &cli.Command{
    Name:  "sync",
    Usage: "reload creator posts from apify",
    Before: func(c *cli.Context) error {
      h = SyncHandler{
        Db:   common.NewDB(),
        Ctx:  context.Background(),
        Nats: common.NewOptionalNats(),
      }
      h.Rdb = common.NewOptionalRedis(h.Ctx)
      h.Repository = repositories.NewSyncRepository(h.Db, h.Rdb, h.Nats, scrapers.NewTikTokScraper())
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "run",
        Usage: "purge and reload every active creator once",
        Action: func(c *cli.Context) error {
          if err := h.Run(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *SyncHandler) Run() error {
  ctx, stop := signal.NotifyContext(h.Ctx, os.Interrupt, syscall.SIGTERM)
  defer stop()

  result, err := h.Repository.Run(ctx)
  if err != nil {
    return err
  }
  log.Info().
    Str("run_id", result.RunID).
    Int("creators", result.Creators).
    Int("batches", result.Batches).
    Int64("processed", result.Processed).
    Int64("errors", result.Errors).
    Msg("sync finished")
  return nil
}
