package commands

import (
  "fmt"

  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
  jwtRepositories "tracker.local/tiktok-dashboard/repositories/jwt"
)

type TokenHandler struct {
  Db              *gorm.DB
  Repository      *repositories.UsersRepository
  TokenRepository *jwtRepositories.TokenRepository
}

func NewTokenCommand() *cli.Command {
  var h TokenHandler
  return &cli.Command{
    Name:  "token",
    Usage: "api bearer tokens",
    Before: func(c *cli.Context) error {
      h = TokenHandler{
        Db:              common.NewDB(),
        TokenRepository: jwtRepositories.NewTokenRepository(),
      }
      h.Repository = &repositories.UsersRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:      "issue",
        Usage:     "print a token for an existing user",
        ArgsUsage: "email",
        Action: func(c *cli.Context) error {
          email := c.Args().Get(0)
          if email == "" {
            return cli.Exit("email can not be empty", 1)
          }
          if err := h.Issue(email); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *TokenHandler) Issue(email string) error {
  user, err := h.Repository.Get(email)
  if err != nil {
    return fmt.Errorf("user %v: %w", email, err)
  }
  token, err := h.TokenRepository.Generate(user)
  if err != nil {
    return err
  }
  log.Info().Str("user_id", user.ID).Dur("expires_in", h.TokenRepository.Expires).Msg("token issued")
  fmt.Println(token)
  return nil
}
