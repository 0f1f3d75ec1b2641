package commands

import (
  "context"
  "sync"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/robfig/cron/v3"
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/tasks"
)

type CronHandler struct {
  Db    *gorm.DB
  Rdb   *redis.Client
  Asynq *asynq.Client
  Ctx   context.Context
}

func NewCronCommand() *cli.Command {
  var h CronHandler
  return &cli.Command{
    Name:  "cron",
    Usage: "enqueue scheduled sync runs",
    Before: func(c *cli.Context) error {
      h = CronHandler{
        Db:    common.NewDB(),
        Asynq: common.NewAsynqClient(),
        Ctx:   context.Background(),
      }
      h.Rdb = common.NewOptionalRedis(h.Ctx)
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *CronHandler) run() error {
  spec := common.GetEnvStringOr("SYNC_CRON", "0 */6 * * *")
  log.Info().Str("schedule", spec).Msg("cron running...")

  wg := &sync.WaitGroup{}
  wg.Add(1)

  ansqContext := &common.AnsqClientContext{
    Db:   h.Db,
    Rdb:  h.Rdb,
    Ctx:  h.Ctx,
    Conn: h.Asynq,
  }
  syncTask := tasks.NewSyncTask(ansqContext)

  c := cron.New()
  _, err := c.AddFunc(spec, func() {
    if _, err := syncTask.Run("cron"); err != nil {
      log.Warn().Err(err).Msg("scheduled sync not queued")
    }
  })
  if err != nil {
    return err
  }
  c.Start()

  <-h.wait(wg)

  return nil
}

func (h *CronHandler) wait(wg *sync.WaitGroup) chan bool {
  ch := make(chan bool)
  go func() {
    wg.Wait()
    ch <- true
  }()
  return ch
}
