package repositories

import "errors"

var (
  ErrNotFound    = errors.New("record not found")
  ErrConflict    = errors.New("record already exists")
  ErrSyncRunning = errors.New("sync already running")
  ErrNoOriginal  = errors.New("no original stats found")
)
