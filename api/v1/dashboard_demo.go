package v1

import (
  "fmt"
  "time"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/repositories"
)

var demoCreators = []struct {
  username    string
  displayName string
  views       int64
}{
  {"_carlapicks_", "Carla Picks", 1423696},
  {"klara.picks", "Klara Picks", 854321},
  {"leo.picks", "Leo Picks", 312654},
}

// demoStats renders a fixed sample of the dashboard payload for previews without data.
func demoStats(now time.Time) *repositories.DashboardStats {
  stats := &repositories.DashboardStats{
    TopPosts:     []*repositories.TopPost{},
    CreatorStats: []*repositories.CreatorStat{},
  }
  views7 := make(map[string]int64)
  views30 := make(map[string]int64)

  for i, creator := range demoCreators {
    counts := make(map[string]int64)
    item := &repositories.CreatorStat{
      ID:          fmt.Sprintf("demo%d", i+1),
      Username:    creator.username,
      DisplayName: creator.displayName,
    }
    for day := 0; day < 5; day++ {
      publishedAt := now.AddDate(0, 0, -day*(i+1))
      views := creator.views / int64(day+1)
      likes := views / 32
      date := publishedAt.Format(common.DateLayout)

      item.PostCount++
      item.TotalViews += views
      item.TotalLikes += likes
      views30[date] += views
      if day*(i+1) < 7 {
        views7[date] += views
        counts[date]++
        item.TotalViews7Days += views
      }
      if day == 0 {
        comments, shares, saves := views/1200, views/5000, int64(0)
        stats.TopPosts = append(stats.TopPosts, &repositories.TopPost{
          ID:           fmt.Sprintf("demo%d-%d", i+1, day),
          Caption:      fmt.Sprintf("Outfit of the day by %v #fashion #ootd", creator.displayName),
          PostUrl:      fmt.Sprintf("https://www.tiktok.com/@%v/video/%d", creator.username, 7300000000000000000+int64(i)),
          PublishedAt:  publishedAt,
          Username:     creator.username,
          DisplayName:  creator.displayName,
          Views:        &views,
          Likes:        &likes,
          Comments:     &comments,
          Shares:       &shares,
          Saves:        &saves,
        })
      }
    }
    item.AvgViews = float64(item.TotalViews) / float64(item.PostCount)
    item.Activity = common.FillMissingCounts(counts, now, 7)
    stats.CreatorStats = append(stats.CreatorStats, item)
    stats.TotalPosts += item.PostCount
    stats.TotalViews += item.TotalViews
    stats.TotalLikes += item.TotalLikes
  }
  stats.TotalCreators = int64(len(demoCreators))
  stats.DailyViews = &repositories.DailyViewsWindows{
    Last7Days:  common.FillMissingDays(views7, now, 7),
    Last30Days: common.FillMissingDays(views30, now, 30),
    AllTime:    common.FillMissingDays(views30, now, 30),
  }
  return stats
}
