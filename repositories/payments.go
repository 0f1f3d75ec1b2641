package repositories

import (
  "time"

  "gorm.io/gorm"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
)

type PaymentsRepository struct {
  Db *gorm.DB
}

type CreatorCPM struct {
  CreatorID              string  `json:"creator_id"`
  Username               string  `json:"username"`
  DisplayName            string  `json:"display_name"`
  TotalPosts             int64   `json:"total_posts"`
  TotalViews             int64   `json:"total_views"`
  MoneyEarnedSoFar       float64 `json:"money_earned_so_far"`
  CPM                    float64 `json:"cpm"`
  PostsNeededForPayment  int64   `json:"posts_needed_for_payment"`
  PotentialTotalEarnings float64 `json:"potential_total_earnings"`
}

type CreatorPayment struct {
  CreatorID            string     `json:"creator_id"`
  Username             string     `json:"username"`
  DisplayName          string     `json:"display_name"`
  FirstPostDate        *time.Time `json:"first_post_date"`
  TotalPosts           int64      `json:"total_posts"`
  PostsNeeded          int64      `json:"posts_needed"`
  DaysSinceStart       int64      `json:"days_since_start"`
  EstimatedPaymentDate *time.Time `json:"estimated_payment_date"`
  PostsPerDay          float64    `json:"posts_per_day"`
  IsReadyForPayment    bool       `json:"is_ready_for_payment"`
  DaysUntilPayment     int64      `json:"days_until_payment"`
  PostsMissed          int64      `json:"posts_missed"`
}

func (r *PaymentsRepository) CPMs() ([]*CreatorCPM, error) {
  creators, err := (&CreatorsRepository{Db: r.Db}).Active(config.PLATFORM_TIKTOK)
  if err != nil {
    return nil, err
  }
  rows, err := latestPostRows(r.Db, map[string]interface{}{})
  if err != nil {
    return nil, err
  }
  groups := groupByCreator(rows)

  data := make([]*CreatorCPM, 0, len(creators))
  for _, creator := range creators {
    var posts, views int64
    for _, row := range groups[creator.ID] {
      posts++
      views += value(row.Views)
    }
    earned := common.Earned(posts, config.PAYMENT_TARGET_POSTS, config.PAYMENT_AMOUNT)
    data = append(data, &CreatorCPM{
      CreatorID:              creator.ID,
      Username:               creator.Username,
      DisplayName:            creator.DisplayName,
      TotalPosts:             posts,
      TotalViews:             views,
      MoneyEarnedSoFar:       earned,
      CPM:                    common.CPM(earned, views),
      PostsNeededForPayment:  common.PostsNeeded(posts, config.PAYMENT_TARGET_POSTS),
      PotentialTotalEarnings: config.PAYMENT_AMOUNT,
    })
  }
  return data, nil
}

func (r *PaymentsRepository) Statuses(now time.Time) ([]*CreatorPayment, error) {
  now = now.UTC()
  creators, err := (&CreatorsRepository{Db: r.Db}).Active(config.PLATFORM_TIKTOK)
  if err != nil {
    return nil, err
  }
  rows, err := latestPostRows(r.Db, map[string]interface{}{})
  if err != nil {
    return nil, err
  }
  groups := groupByCreator(rows)

  data := make([]*CreatorPayment, 0, len(creators))
  for _, creator := range creators {
    var first *time.Time
    posts := groups[creator.ID]
    for _, row := range posts {
      if first == nil || row.PublishedAt.Before(*first) {
        publishedAt := row.PublishedAt
        first = &publishedAt
      }
    }
    status := common.PaymentStatus(
      int64(len(posts)),
      first,
      now,
      config.PAYMENT_TARGET_POSTS,
      config.EXPECTED_POSTS_PER_DAY,
    )
    data = append(data, &CreatorPayment{
      CreatorID:            creator.ID,
      Username:             creator.Username,
      DisplayName:          creator.DisplayName,
      FirstPostDate:        first,
      TotalPosts:           status.TotalPosts,
      PostsNeeded:          status.PostsNeeded,
      DaysSinceStart:       status.DaysSinceStart,
      EstimatedPaymentDate: status.EstimatedPaymentDate,
      PostsPerDay:          status.PostsPerDay,
      IsReadyForPayment:    status.IsReadyForPayment,
      DaysUntilPayment:     status.DaysUntilPayment,
      PostsMissed:          status.PostsMissed,
    })
  }
  return data, nil
}
