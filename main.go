package main

import (
  "os"
  "path"
  "path/filepath"

  "github.com/joho/godotenv"
  "github.com/rs/zerolog/log"
  "github.com/urfave/cli/v2"

  "tracker.local/tiktok-dashboard/commands"
  "tracker.local/tiktok-dashboard/common"
)

func main() {
  err := godotenv.Load(path.Join(filepath.Dir(os.Args[0]), ".env"))
  if err != nil {
    dir, _ := os.Getwd()
    err = godotenv.Load(path.Join(dir, ".env"))
  }
  common.InitLogger()
  if err != nil {
    log.Warn().Err(err).Msg("no .env file loaded")
  }

  app := &cli.App{
    Name:  "tiktok dashboard commands",
    Usage: "creator performance tracking",
    Action: func(c *cli.Context) error {
      if c.Command.Action == nil {
        cli.ShowAppHelp(c)
      } else {
        log.Fatal().Err(c.Err()).Msg("error")
      }
      return nil
    },
    Commands: []*cli.Command{
      commands.NewDbCommand(),
      commands.NewApiCommand(),
      commands.NewQueueCommand(),
      commands.NewCronCommand(),
      commands.NewSyncCommand(),
      commands.NewCreatorsCommand(),
      commands.NewUsersCommand(),
      commands.NewTokenCommand(),
      commands.NewStatsCommand(),
    },
    Version: "0.1.0",
  }

  if err := app.Run(os.Args); err != nil {
    log.Fatal().Err(err).Msg("error")
  }
}
