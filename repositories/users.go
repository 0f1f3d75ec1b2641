package repositories

import (
  "errors"
  "strings"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/models"
)

type UsersRepository struct {
  Db *gorm.DB
}

func (r *UsersRepository) Find(id string) (entity *models.User, err error) {
  err = r.Db.First(&entity, "id=?", id).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *UsersRepository) Get(email string) (entity *models.User, err error) {
  err = r.Db.Where("email", strings.ToLower(strings.TrimSpace(email))).Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

// Authenticate returns nil when the email is unknown or the password does not match.
func (r *UsersRepository) Authenticate(email string, password string) *models.User {
  user, err := r.Get(email)
  if err != nil {
    return nil
  }
  if !common.VerifyPassword(password, user.Password) {
    return nil
  }
  return user
}

func (r *UsersRepository) Create(
  email string,
  password string,
  firstName string,
  lastName string,
  avatarUrl string,
) (entity *models.User, err error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if _, err := r.Get(email); err == nil {
    return nil, ErrConflict
  }
  hash, err := common.GeneratePassword(password)
  if err != nil {
    return nil, err
  }
  entity = &models.User{
    ID:        xid.New().String(),
    Email:     email,
    Password:  hash,
    FirstName: firstName,
    LastName:  lastName,
    AvatarUrl: avatarUrl,
  }
  err = r.Db.Create(entity).Error
  return
}
