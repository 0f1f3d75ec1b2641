package commands

import (
  "errors"

  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/models"
  "tracker.local/tiktok-dashboard/repositories"
)

var seedCreators = []string{
  "leo.picks",
  "blion.picks",
  "kat.picks",
  "victoria_picks",
  "ben_picks_",
  "klara.picks",
  "josh.picks",
  "carlos.picks_",
  "fisapicks",
  "_carlapicks_",
}

type DbHandler struct {
  Db                 *gorm.DB
  CreatorsRepository *repositories.CreatorsRepository
  UsersRepository    *repositories.UsersRepository
}

func NewDbCommand() *cli.Command {
  var h DbHandler
  return &cli.Command{
    Name:  "db",
    Usage: "database maintenance",
    Before: func(c *cli.Context) error {
      h = DbHandler{
        Db: common.NewDB(),
      }
      h.CreatorsRepository = &repositories.CreatorsRepository{
        Db: h.Db,
      }
      h.UsersRepository = &repositories.UsersRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "migrate",
        Usage: "create or update the tables",
        Action: func(c *cli.Context) error {
          if err := h.migrate(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:  "seed",
        Usage: "insert the demo user and the default creators",
        Action: func(c *cli.Context) error {
          if err := h.migrate(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          if err := h.seed(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *DbHandler) migrate() error {
  log.Info().Msg("process migrator")
  return models.AutoMigrate(h.Db)
}

func (h *DbHandler) seed() error {
  _, err := h.UsersRepository.Create(
    "demo@example.com",
    "password",
    "John",
    "Doe",
    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face",
  )
  if err != nil && !errors.Is(err, repositories.ErrConflict) {
    return err
  }

  created := 0
  for _, username := range seedCreators {
    _, err := h.CreatorsRepository.Create(username, "", "")
    if errors.Is(err, repositories.ErrConflict) {
      continue
    }
    if err != nil {
      return err
    }
    created++
  }
  log.Info().Int("creators", created).Int("total", len(seedCreators)).Msg("seed completed")
  return nil
}
