package repositories

import (
  "context"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/goccy/go-json"
  "github.com/rs/zerolog/log"
)

// CacheRepository is a no-op when Rdb is nil.
type CacheRepository struct {
  Rdb *redis.Client
  Ctx context.Context
}

func (r *CacheRepository) Get(key string, out interface{}) bool {
  if r == nil || r.Rdb == nil {
    return false
  }
  data, err := r.Rdb.Get(r.Ctx, key).Bytes()
  if err != nil {
    return false
  }
  return json.Unmarshal(data, out) == nil
}

func (r *CacheRepository) Set(key string, in interface{}, ttl time.Duration) {
  if r == nil || r.Rdb == nil {
    return
  }
  data, err := json.Marshal(in)
  if err != nil {
    return
  }
  if err := r.Rdb.Set(r.Ctx, key, data, ttl).Err(); err != nil {
    log.Warn().Err(err).Str("key", key).Msg("cache set failed")
  }
}

func (r *CacheRepository) Delete(keys ...string) {
  if r == nil || r.Rdb == nil {
    return
  }
  r.Rdb.Del(r.Ctx, keys...)
}
