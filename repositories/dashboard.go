package repositories

import (
  "sort"
  "time"

  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
)

type DashboardRepository struct {
  Db *gorm.DB
}

type DashboardStats struct {
  TotalPosts    int64              `json:"totalPosts"`
  TotalCreators int64              `json:"totalCreators"`
  TotalViews    int64              `json:"totalViews"`
  TotalLikes    int64              `json:"totalLikes"`
  TopPosts      []*TopPost         `json:"topPosts"`
  CreatorStats  []*CreatorStat     `json:"creatorStats"`
  DailyViews    *DailyViewsWindows `json:"dailyViews"`
}

type TopPost struct {
  ID           string    `json:"id"`
  Caption      string    `json:"caption"`
  PostUrl      string    `json:"post_url"`
  ThumbnailUrl string    `json:"thumbnail_url"`
  PublishedAt  time.Time `json:"published_at"`
  Username     string    `json:"username"`
  DisplayName  string    `json:"display_name"`
  Views        *int64    `json:"views"`
  Likes        *int64    `json:"likes"`
  Comments     *int64    `json:"comments"`
  Shares       *int64    `json:"shares"`
  Saves        *int64    `json:"saves"`
}

type CreatorStat struct {
  ID              string               `json:"id"`
  Username        string               `json:"username"`
  DisplayName     string               `json:"display_name"`
  PostCount       int64                `json:"post_count"`
  TotalViews      int64                `json:"total_views"`
  TotalLikes      int64                `json:"total_likes"`
  AvgViews        float64              `json:"avg_views"`
  Activity        []*common.DailyCount `json:"activity"`
  TotalViews7Days int64                `json:"total_views_7_days"`
}

type DailyViewsWindows struct {
  Last7Days  []*common.DailyViews `json:"last7Days"`
  Last30Days []*common.DailyViews `json:"last30Days"`
  AllTime    []*common.DailyViews `json:"allTime"`
}

type TopVideo struct {
  ID          string    `json:"id"`
  Caption     string    `json:"caption"`
  PostUrl     string    `json:"post_url"`
  PublishedAt time.Time `json:"published_at"`
  Username    string    `json:"username"`
  DisplayName string    `json:"display_name"`
  Views       int64     `json:"views"`
  Likes       int64     `json:"likes"`
  Comments    int64     `json:"comments"`
  Shares      int64     `json:"shares"`
}

func (r *DashboardRepository) Stats(now time.Time) (*DashboardStats, error) {
  now = now.UTC()
  rows, err := latestPostRows(r.Db, map[string]interface{}{})
  if err != nil {
    return nil, err
  }
  creators, err := (&CreatorsRepository{Db: r.Db}).Active(config.PLATFORM_TIKTOK)
  if err != nil {
    return nil, err
  }

  week := now.AddDate(0, 0, -7)
  month := now.AddDate(0, 0, -30)

  stats := &DashboardStats{
    TotalPosts:    int64(len(rows)),
    TotalCreators: int64(len(creators)),
    TopPosts:      []*TopPost{},
    CreatorStats:  []*CreatorStat{},
  }

  views7 := make(map[string]int64)
  views30 := make(map[string]int64)
  viewsAll := make(map[string]int64)
  for _, row := range rows {
    views := value(row.Views)
    stats.TotalViews += views
    stats.TotalLikes += value(row.Likes)

    day := row.PublishedAt.Format(common.DateLayout)
    viewsAll[day] += views
    if !row.PublishedAt.Before(month) {
      views30[day] += views
    }
    if !row.PublishedAt.Before(week) {
      views7[day] += views
    }

    if !row.CreatedAt.Before(week) {
      stats.TopPosts = append(stats.TopPosts, &TopPost{
        ID:           row.ID,
        Caption:      row.Caption,
        PostUrl:      row.PostUrl,
        ThumbnailUrl: row.ThumbnailUrl,
        PublishedAt:  row.PublishedAt,
        Username:     row.Username,
        DisplayName:  row.DisplayName,
        Views:        row.Views,
        Likes:        row.Likes,
        Comments:     row.Comments,
        Shares:       row.Shares,
        Saves:        row.Saves,
      })
    }
  }
  sort.SliceStable(stats.TopPosts, func(i, j int) bool {
    return value(stats.TopPosts[i].Views) > value(stats.TopPosts[j].Views)
  })

  groups := groupByCreator(rows)
  for _, creator := range creators {
    item := &CreatorStat{
      ID:          creator.ID,
      Username:    creator.Username,
      DisplayName: creator.DisplayName,
    }
    counts := make(map[string]int64)
    var measured int64
    for _, row := range groups[creator.ID] {
      item.PostCount++
      item.TotalViews += value(row.Views)
      item.TotalLikes += value(row.Likes)
      if row.HasStats() {
        measured++
      }
      if !row.PublishedAt.Before(week) {
        counts[row.PublishedAt.Format(common.DateLayout)]++
        item.TotalViews7Days += value(row.Views)
      }
    }
    if measured > 0 {
      item.AvgViews = float64(item.TotalViews) / float64(measured)
    }
    item.Activity = common.FillMissingCounts(counts, now, 7)
    stats.CreatorStats = append(stats.CreatorStats, item)
  }
  sort.SliceStable(stats.CreatorStats, func(i, j int) bool {
    return stats.CreatorStats[i].TotalViews > stats.CreatorStats[j].TotalViews
  })

  // all time is charted over the last 30 days as well
  stats.DailyViews = &DailyViewsWindows{
    Last7Days:  common.FillMissingDays(views7, now, 7),
    Last30Days: common.FillMissingDays(views30, now, 30),
    AllTime:    common.FillMissingDays(viewsAll, now, 30),
  }

  return stats, nil
}

// TopVideo returns the most viewed measured post published on date (YYYY-MM-DD, UTC).
func (r *DashboardRepository) TopVideo(date string) (*TopVideo, error) {
  rows, err := latestPostRows(r.Db, map[string]interface{}{})
  if err != nil {
    return nil, err
  }
  var top *PostRow
  for _, row := range rows {
    if !row.HasStats() || row.PublishedAt.Format(common.DateLayout) != date {
      continue
    }
    if top == nil || *row.Views > *top.Views {
      top = row
    }
  }
  if top == nil {
    return nil, ErrNotFound
  }
  return &TopVideo{
    ID:          top.ID,
    Caption:     top.Caption,
    PostUrl:     top.PostUrl,
    PublishedAt: top.PublishedAt,
    Username:    top.Username,
    DisplayName: top.DisplayName,
    Views:       value(top.Views),
    Likes:       value(top.Likes),
    Comments:    value(top.Comments),
    Shares:      value(top.Shares),
  }, nil
}
