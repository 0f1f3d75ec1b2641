package models

import (
  "time"
)

type User struct {
  ID        string    `gorm:"size:20;primaryKey"`
  Email     string    `gorm:"size:200;not null;uniqueIndex"`
  Password  string    `gorm:"size:128;not null"`
  FirstName string    `gorm:"size:100;not null;default:''"`
  LastName  string    `gorm:"size:100;not null;default:''"`
  AvatarUrl string    `gorm:"size:500;not null;default:''"`
  CreatedAt time.Time `gorm:"not null"`
  UpdatedAt time.Time `gorm:"not null"`
}

func (m *User) TableName() string {
  return "users"
}
