package common

import (
  "math"
  "time"
)

const DateLayout = "2006-01-02"

type DailyViews struct {
  Date  string `json:"date"`
  Views int64  `json:"views"`
}

type DailyCount struct {
  Date  string `json:"date"`
  Count int64  `json:"count"`
}

type Payment struct {
  TotalPosts           int64
  PostsNeeded          int64
  DaysSinceStart       int64
  PostsPerDay          float64
  IsReadyForPayment    bool
  PostsMissed          int64
  DaysUntilPayment     int64
  EstimatedPaymentDate *time.Time
}

func EngagementRate(views int64, likes int64, comments int64, shares int64) float64 {
  if views <= 0 {
    return 0
  }
  return float64(likes+comments+shares) / float64(views)
}

// Earned is pro rata to posts against the target.
func Earned(posts int64, target int64, amount float64) float64 {
  if target <= 0 {
    return 0
  }
  return float64(posts) / float64(target) * amount
}

func CPM(earned float64, views int64) float64 {
  if views <= 0 {
    return 0
  }
  return earned / float64(views) * 1000
}

func PostsNeeded(posts int64, target int64) int64 {
  if posts >= target {
    return 0
  }
  return target - posts
}

// PaymentStatus projects payout readiness. A nil first post means the creator has not started yet.
func PaymentStatus(
  posts int64,
  firstPost *time.Time,
  now time.Time,
  target int64,
  expectedPerDay int64,
) *Payment {
  p := &Payment{
    TotalPosts:        posts,
    PostsNeeded:       PostsNeeded(posts, target),
    IsReadyForPayment: posts >= target,
  }
  if firstPost != nil {
    p.DaysSinceStart = int64(math.Floor(now.Sub(*firstPost).Hours() / 24))
  }
  if p.DaysSinceStart > 0 {
    p.PostsPerDay = float64(posts) / float64(p.DaysSinceStart)
  }
  if missed := p.DaysSinceStart*expectedPerDay - posts; missed > 0 {
    p.PostsMissed = missed
  }
  if !p.IsReadyForPayment && p.PostsPerDay > 0 {
    p.DaysUntilPayment = int64(math.Ceil(float64(p.PostsNeeded) / p.PostsPerDay))
    estimated := now.AddDate(0, 0, int(p.DaysUntilPayment))
    p.EstimatedPaymentDate = &estimated
  }
  return p
}

// Days lists the last n calendar dates ending today, oldest first.
func Days(now time.Time, n int) []string {
  days := make([]string, 0, n)
  today := now.UTC()
  for i := n - 1; i >= 0; i-- {
    days = append(days, today.AddDate(0, 0, -i).Format(DateLayout))
  }
  return days
}

func FillMissingDays(views map[string]int64, now time.Time, n int) []*DailyViews {
  days := Days(now, n)
  result := make([]*DailyViews, len(days))
  for i, day := range days {
    result[i] = &DailyViews{
      Date:  day,
      Views: views[day],
    }
  }
  return result
}

func FillMissingCounts(counts map[string]int64, now time.Time, n int) []*DailyCount {
  days := Days(now, n)
  result := make([]*DailyCount, len(days))
  for i, day := range days {
    result[i] = &DailyCount{
      Date:  day,
      Count: counts[day],
    }
  }
  return result
}
