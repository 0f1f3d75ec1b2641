package commands

import (
  "context"

  "github.com/go-redis/redis/v8"
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/repositories"
  "tracker.local/tiktok-dashboard/tasks"
)

type StatsHandler struct {
  Db                 *gorm.DB
  Rdb                *redis.Client
  Ctx                context.Context
  Repository         *repositories.DailyStatsRepository
  CreatorsRepository *repositories.CreatorsRepository
}

func NewStatsCommand() *cli.Command {
  var h StatsHandler
  return &cli.Command{
    Name:  "stats",
    Usage: "per creator daily rollups",
    Before: func(c *cli.Context) error {
      h = StatsHandler{
        Db:  common.NewDB(),
        Ctx: context.Background(),
      }
      h.Rdb = common.NewOptionalRedis(h.Ctx)
      h.Repository = &repositories.DailyStatsRepository{
        Db: h.Db,
      }
      h.CreatorsRepository = &repositories.CreatorsRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "rebuild",
        Usage: "recompute creator_stats_daily for the active creators",
        Flags: []cli.Flag{
          &cli.BoolFlag{
            Name:  "queue",
            Usage: "enqueue the rebuild on asynq instead of running it here",
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Rebuild(c.Bool("queue")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *StatsHandler) Rebuild(queue bool) error {
  creators, err := h.CreatorsRepository.Active(config.PLATFORM_TIKTOK)
  if err != nil {
    return err
  }
  ids := make([]string, len(creators))
  for i, creator := range creators {
    ids[i] = creator.ID
  }

  if queue {
    client := common.NewAsynqClient()
    defer client.Close()
    info, err := tasks.NewSyncTask(&common.AnsqClientContext{
      Db:   h.Db,
      Rdb:  h.Rdb,
      Ctx:  h.Ctx,
      Conn: client,
    }).Stats(ids)
    if err != nil {
      return err
    }
    log.Info().Str("task_id", info.ID).Int("creators", len(ids)).Msg("daily stats rebuild queued")
    return nil
  }

  rows, err := h.Repository.Rebuild(ids)
  if err != nil {
    return err
  }
  (&repositories.CacheRepository{Rdb: h.Rdb, Ctx: h.Ctx}).Delete(config.REDIS_KEY_DASHBOARD_STATS)
  log.Info().Int("creators", len(ids)).Int("rows", rows).Msg("daily stats rebuilt")
  return nil
}
