package common

import (
  "io"
  "os"
  "strings"
  "time"

  "github.com/rs/zerolog"
  "github.com/rs/zerolog/log"
)

func InitLogger() {
  InitLoggerWith(os.Stderr, GetEnvString("LOG_LEVEL"), GetEnvString("LOG_FORMAT"))
}

func InitLoggerWith(out io.Writer, level string, format string) {
  zerolog.SetGlobalLevel(parseLevel(level))
  zerolog.TimeFieldFormat = time.RFC3339

  if format == "console" {
    out = zerolog.ConsoleWriter{
      Out:        out,
      TimeFormat: "15:04:05",
    }
  }
  log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
  switch strings.ToLower(level) {
  case "trace":
    return zerolog.TraceLevel
  case "debug":
    return zerolog.DebugLevel
  case "warn", "warning":
    return zerolog.WarnLevel
  case "error":
    return zerolog.ErrorLevel
  case "disabled":
    return zerolog.Disabled
  default:
    return zerolog.InfoLevel
  }
}
