package commands

import (
  "fmt"

  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/repositories"
)

type CreatorsHandler struct {
  Db         *gorm.DB
  Repository *repositories.CreatorsRepository
}

func NewCreatorsCommand() *cli.Command {
  var h CreatorsHandler
  return &cli.Command{
    Name:  "creators",
    Usage: "manage tracked creators",
    Before: func(c *cli.Context) error {
      h = CreatorsHandler{
        Db: common.NewDB(),
      }
      h.Repository = &repositories.CreatorsRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:      "add",
        Usage:     "track a tiktok username",
        ArgsUsage: "username [display name]",
        Action: func(c *cli.Context) error {
          username := c.Args().Get(0)
          if username == "" {
            return cli.Exit("username can not be empty", 1)
          }
          if err := h.Add(username, c.Args().Get(1)); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:  "list",
        Usage: "print the tracked creators",
        Action: func(c *cli.Context) error {
          if err := h.List(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:      "rename",
        Usage:     "move a creator to a new username",
        ArgsUsage: "from to",
        Action: func(c *cli.Context) error {
          from := c.Args().Get(0)
          to := c.Args().Get(1)
          if from == "" || to == "" {
            return cli.Exit("from and to can not be empty", 1)
          }
          if err := h.Rename(from, to); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *CreatorsHandler) Add(username string, displayName string) error {
  creator, err := h.Repository.Create(username, displayName, "")
  if err != nil {
    return fmt.Errorf("add %v: %w", username, err)
  }
  log.Info().Str("id", creator.ID).Str("username", creator.Username).Msg("creator added")
  return nil
}

func (h *CreatorsHandler) List() error {
  items, err := h.Repository.Listings(config.CREATORS_LISTING_LIMIT)
  if err != nil {
    return err
  }
  for _, item := range items {
    lastPost := "-"
    if item.LastPostAt != nil {
      lastPost = item.LastPostAt.Format(common.DateLayout)
    }
    fmt.Printf("%-22v %-24v posts=%-4d last=%v\n", item.ID, item.Username, item.PostsCount, lastPost)
  }
  return nil
}

func (h *CreatorsHandler) Rename(from string, to string) error {
  creator, err := h.Repository.Rename(from, to)
  if err != nil {
    return fmt.Errorf("rename %v: %w", from, err)
  }
  log.Info().Str("id", creator.ID).Str("from", from).Str("to", creator.Username).Msg("creator renamed")
  return nil
}
