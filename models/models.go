package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
  return db.AutoMigrate(
    &Creator{},
    &Post{},
    &PostStat{},
    &PostStatOriginal{},
    &CreatorStatDaily{},
    &SyncLog{},
    &User{},
  )
}
