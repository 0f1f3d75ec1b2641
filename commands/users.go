package commands

import (
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
)

type UsersHandler struct {
  Db         *gorm.DB
  Repository *repositories.UsersRepository
}

func NewUsersCommand() *cli.Command {
  var h UsersHandler
  return &cli.Command{
    Name:  "users",
    Usage: "dashboard login accounts",
    Before: func(c *cli.Context) error {
      h = UsersHandler{
        Db: common.NewDB(),
      }
      h.Repository = &repositories.UsersRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:      "create",
        Usage:     "add a login account",
        ArgsUsage: "email password",
        Flags: []cli.Flag{
          &cli.StringFlag{Name: "first-name"},
          &cli.StringFlag{Name: "last-name"},
          &cli.StringFlag{Name: "avatar-url"},
        },
        Action: func(c *cli.Context) error {
          email := c.Args().Get(0)
          if email == "" {
            return cli.Exit("email can not be empty", 1)
          }
          password := c.Args().Get(1)
          if password == "" {
            return cli.Exit("password can not be empty", 1)
          }
          if err := h.Create(
            email,
            password,
            c.String("first-name"),
            c.String("last-name"),
            c.String("avatar-url"),
          ); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *UsersHandler) Create(
  email string,
  password string,
  firstName string,
  lastName string,
  avatarUrl string,
) error {
  user, err := h.Repository.Create(email, password, firstName, lastName, avatarUrl)
  if err != nil {
    return err
  }
  log.Info().Str("id", user.ID).Str("email", user.Email).Msg("user created")
  return nil
}
