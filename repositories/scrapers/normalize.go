package scrapers

import (
  "regexp"
  "strconv"
  "strings"
  "time"

  "github.com/tidwall/gjson"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

var profileHandle = regexp.MustCompile(`@([^/]+)`)

type NormalizedItem struct {
  Post           *models.Post
  AuthorHandle   string
  Views          int64
  Likes          int64
  Comments       int64
  Shares         int64
  EngagementRate float64
}

// NormalizeItem maps one raw dataset item onto a post and its stat values.
// Items without an id or a url, or with an unreadable createTimeISO, are rejected.
func NormalizeItem(item gjson.Result, creatorID string, now time.Time) (*NormalizedItem, bool) {
  postID := text(first(item, "id", "itemId", "video.id"))
  if postID == "" {
    return nil, false
  }
  url := text(first(item, "url", "shareUrl", "webVideoUrl"))
  if url == "" {
    return nil, false
  }

  var publishedAt time.Time
  if iso := first(item, "createTimeISO"); iso.Exists() {
    parsed, err := time.Parse(time.RFC3339, text(iso))
    if err != nil {
      return nil, false
    }
    publishedAt = parsed
  } else if created := first(item, "createTime"); created.Exists() {
    publishedAt = time.UnixMilli(int64(created.Float() * 1000))
  } else {
    publishedAt = now
  }

  stats := item
  if s := first(item, "stats"); s.Exists() {
    stats = s
  }
  views := parseInt(first(stats, "playCount", "play_count", "views"))
  likes := parseInt(first(stats, "diggCount", "digg_count", "likes"))
  comments := parseInt(first(stats, "commentCount", "comment_count", "comments"))
  shares := parseInt(first(stats, "shareCount", "share_count", "shares"))

  return &NormalizedItem{
    Post: &models.Post{
      CreatorID:    creatorID,
      ExternalID:   postID,
      Platform:     config.PLATFORM_TIKTOK,
      ContentType:  config.CONTENT_TYPE_VIDEO,
      Caption:      text(first(item, "text", "desc")),
      MediaUrl:     url,
      ThumbnailUrl: text(first(item, "thumbnailUrl", "cover", "video.cover", "videoMeta.coverUrl")),
      PostUrl:      url,
      PublishedAt:  publishedAt.UTC(),
    },
    AuthorHandle:   text(first(item, "authorMeta.name", "author.uniqueId")),
    Views:          views,
    Likes:          likes,
    Comments:       comments,
    Shares:         shares,
    EngagementRate: common.EngagementRate(views, likes, comments, shares),
  }, true
}

// MatchCreator finds the batch creator an item belongs to: author name first,
// then the handle in webVideoUrl, then username or userId.
func MatchCreator(item gjson.Result, creators []*models.Creator) *models.Creator {
  if name := text(first(item, "authorMeta.name")); name != "" {
    if creator := byUsername(creators, name); creator != nil {
      return creator
    }
  }
  if url := text(first(item, "webVideoUrl")); url != "" {
    if match := profileHandle.FindStringSubmatch(url); match != nil {
      if creator := byUsername(creators, match[1]); creator != nil {
        return creator
      }
    }
  }
  username := text(item.Get("username"))
  userID := text(item.Get("userId"))
  for _, creator := range creators {
    if (username != "" && creator.Username == username) || (userID != "" && creator.ExternalID == userID) {
      return creator
    }
  }
  return nil
}

func byUsername(creators []*models.Creator, username string) *models.Creator {
  for _, creator := range creators {
    if creator.Username == username {
      return creator
    }
  }
  return nil
}

// first returns the first truthy value among paths, the way `a || b || c` picks one.
func first(item gjson.Result, paths ...string) gjson.Result {
  for _, path := range paths {
    if value := item.Get(path); truthy(value) {
      return value
    }
  }
  return gjson.Result{}
}

func truthy(value gjson.Result) bool {
  switch value.Type {
  case gjson.True, gjson.JSON:
    return true
  case gjson.Number:
    return value.Num != 0
  case gjson.String:
    return value.Str != ""
  }
  return false
}

func text(value gjson.Result) string {
  if value.Type == gjson.Number {
    return strings.TrimSpace(value.Raw)
  }
  if value.Type == gjson.String {
    return value.Str
  }
  return ""
}

// parseInt reads the leading integer of a value, 0 when there is none.
func parseInt(value gjson.Result) int64 {
  s := strings.TrimSpace(text(value))
  if value.Type == gjson.Number && strings.ContainsAny(s, "eE") {
    s = strconv.FormatFloat(value.Num, 'f', -1, 64)
  }
  end := 0
  if end < len(s) && (s[end] == '-' || s[end] == '+') {
    end++
  }
  digits := end
  for end < len(s) && s[end] >= '0' && s[end] <= '9' {
    end++
  }
  if end == digits {
    return 0
  }
  n, err := strconv.ParseInt(s[:end], 10, 64)
  if err != nil {
    return 0
  }
  return n
}
