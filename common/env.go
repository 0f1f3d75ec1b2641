package common

import (
  "os"
  "strconv"
  "strings"
  "time"
)

func GetEnvString(key string) string {
  return os.Getenv(key)
}

func GetEnvStringOr(key string, fallback string) string {
  if value, ok := os.LookupEnv(key); ok && value != "" {
    return value
  }
  return fallback
}

func GetEnvInt(key string) int {
  value, _ := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
  return value
}

func GetEnvIntOr(key string, fallback int) int {
  value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
  if err != nil {
    return fallback
  }
  return value
}

func GetEnvBool(key string) bool {
  value, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
  return value
}

// GetEnvArray splits on ";" so entries may carry commas, e.g. ASYNQ_QUEUE=tiktok.sync,10;default,1
func GetEnvArray(key string) []string {
  var items []string
  for _, item := range strings.Split(os.Getenv(key), ";") {
    item = strings.TrimSpace(item)
    if item != "" {
      items = append(items, item)
    }
  }
  return items
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
  value := strings.TrimSpace(os.Getenv(key))
  if value == "" {
    return fallback
  }
  duration, err := ParseDuration(value)
  if err != nil {
    return fallback
  }
  return duration
}

// ParseDuration accepts Go durations plus a trailing "d" for days ("7d").
func ParseDuration(value string) (time.Duration, error) {
  if strings.HasSuffix(value, "d") {
    days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
    if err != nil {
      return 0, err
    }
    return time.Duration(days) * 24 * time.Hour, nil
  }
  return time.ParseDuration(value)
}
