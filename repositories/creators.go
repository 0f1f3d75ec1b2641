package repositories

import (
  "errors"
  "sort"
  "strings"
  "time"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

type CreatorsRepository struct {
  Db *gorm.DB
}

type CreatorListing struct {
  ID          string     `json:"id"`
  Username    string     `json:"username"`
  DisplayName string     `json:"display_name"`
  Followers   int64      `json:"followers"`
  PostsCount  int64      `json:"posts_count"`
  LastPostAt  *time.Time `json:"last_post_at"`
  createdAt   time.Time
}

func (r *CreatorsRepository) Find(id string) (entity *models.Creator, err error) {
  err = r.Db.First(&entity, "id=?", id).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *CreatorsRepository) Get(username string) (entity *models.Creator, err error) {
  err = r.Db.Where("username", NormalizeUsername(username)).Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    err = ErrNotFound
  }
  return
}

func (r *CreatorsRepository) IsExists(username string) bool {
  var total int64
  r.Db.Model(&models.Creator{}).Where("username", NormalizeUsername(username)).Count(&total)
  return total > 0
}

func (r *CreatorsRepository) Active(platform string) (creators []*models.Creator, err error) {
  err = r.Db.Where("platform = ? AND is_active = ?", platform, true).Order("username ASC").Find(&creators).Error
  return
}

func (r *CreatorsRepository) Count(conditions map[string]interface{}) int64 {
  var total int64
  query := r.Db.Model(&models.Creator{})
  if _, ok := conditions["platform"]; ok {
    query.Where("platform", conditions["platform"].(string))
  }
  if _, ok := conditions["is_active"]; ok {
    query.Where("is_active", conditions["is_active"].(bool))
  }
  query.Count(&total)
  return total
}

func (r *CreatorsRepository) Create(
  username string,
  displayName string,
  externalID string,
) (entity *models.Creator, err error) {
  username = NormalizeUsername(username)
  if r.IsExists(username) {
    return nil, ErrConflict
  }
  if displayName == "" {
    displayName = username
  }
  if externalID == "" {
    externalID = username
  }
  entity = &models.Creator{
    ID:          xid.New().String(),
    ExternalID:  externalID,
    Platform:    config.PLATFORM_TIKTOK,
    Username:    username,
    DisplayName: displayName,
    ProfileUrl:  "https://www.tiktok.com/@" + username,
    IsActive:    true,
  }
  err = r.Db.Create(entity).Error
  return
}

// Rename moves a creator to a new handle and display name, keeping its posts.
func (r *CreatorsRepository) Rename(from string, to string) (entity *models.Creator, err error) {
  to = NormalizeUsername(to)
  entity, err = r.Get(from)
  if err != nil {
    return nil, err
  }
  if entity.Username == to {
    return entity, nil
  }
  if r.IsExists(to) {
    return nil, ErrConflict
  }
  err = r.Updates(entity, map[string]interface{}{
    "username":     to,
    "display_name": to,
    "profile_url":  "https://www.tiktok.com/@" + to,
  })
  if err != nil {
    return nil, err
  }
  return r.Find(entity.ID)
}

func (r *CreatorsRepository) Update(creator *models.Creator, column string, value interface{}) error {
  return r.Db.Model(creator).Update(column, value).Error
}

func (r *CreatorsRepository) Updates(creator *models.Creator, values map[string]interface{}) error {
  if username, ok := values["username"].(string); ok {
    username = NormalizeUsername(username)
    if username != creator.Username && r.IsExists(username) {
      return ErrConflict
    }
    values["username"] = username
  }
  return r.Db.Model(creator).Updates(values).Error
}

func (r *CreatorsRepository) Listings(limit int) ([]*CreatorListing, error) {
  var creators []*models.Creator
  if err := r.Db.Find(&creators).Error; err != nil {
    return nil, err
  }

  var posts []struct {
    CreatorID   string
    PublishedAt time.Time
  }
  if err := r.Db.Model(&models.Post{}).Select("creator_id, published_at").Scan(&posts).Error; err != nil {
    return nil, err
  }

  items := make(map[string]*CreatorListing, len(creators))
  data := make([]*CreatorListing, 0, len(creators))
  for _, creator := range creators {
    item := &CreatorListing{
      ID:          creator.ID,
      Username:    creator.Username,
      DisplayName: creator.DisplayName,
      Followers:   creator.FollowerCount,
      createdAt:   creator.CreatedAt,
    }
    items[creator.ID] = item
    data = append(data, item)
  }
  for _, post := range posts {
    item, ok := items[post.CreatorID]
    if !ok {
      continue
    }
    item.PostsCount++
    if item.LastPostAt == nil || post.PublishedAt.After(*item.LastPostAt) {
      publishedAt := post.PublishedAt
      item.LastPostAt = &publishedAt
    }
  }

  sort.SliceStable(data, func(i, j int) bool {
    return data[i].activity().After(data[j].activity())
  })
  if limit > 0 && len(data) > limit {
    data = data[:limit]
  }
  return data, nil
}

func (l *CreatorListing) activity() time.Time {
  if l.LastPostAt != nil {
    return *l.LastPostAt
  }
  return l.createdAt
}

func NormalizeUsername(username string) string {
  return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
