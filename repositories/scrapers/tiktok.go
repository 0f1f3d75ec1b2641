package scrapers

import (
  "context"
  "fmt"

  "github.com/rs/zerolog/log"
  "github.com/tidwall/gjson"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

// Scraper fetches raw profile items for a batch of creators.
type Scraper interface {
  RunTikTokScraper(ctx context.Context, creators []*models.Creator) ([]gjson.Result, error)
}

type ProfileInput struct {
  ExcludePinnedPosts            bool     `json:"excludePinnedPosts"`
  ProfileScrapeSections         []string `json:"profileScrapeSections"`
  ProfileSorting                string   `json:"profileSorting"`
  Profiles                      []string `json:"profiles"`
  ProxyCountryCode              string   `json:"proxyCountryCode"`
  ResultsPerPage                int      `json:"resultsPerPage"`
  ScrapeRelatedVideos           bool     `json:"scrapeRelatedVideos"`
  ShouldDownloadAvatars         bool     `json:"shouldDownloadAvatars"`
  ShouldDownloadCovers          bool     `json:"shouldDownloadCovers"`
  ShouldDownloadMusicCovers     bool     `json:"shouldDownloadMusicCovers"`
  ShouldDownloadSlideshowImages bool     `json:"shouldDownloadSlideshowImages"`
  ShouldDownloadSubtitles       bool     `json:"shouldDownloadSubtitles"`
  ShouldDownloadVideos          bool     `json:"shouldDownloadVideos"`
}

type TikTokScraper struct {
  Client *ApifyClient
  TaskID string
}

// NewTikTokScraper runs the saved actor task named by APIFY_ACTOR_ID.
func NewTikTokScraper() *TikTokScraper {
  return &TikTokScraper{
    Client: NewApifyClient(),
    TaskID: common.GetEnvString("APIFY_ACTOR_ID"),
  }
}

func NewProfileInput(creators []*models.Creator) *ProfileInput {
  profiles := make([]string, len(creators))
  for i, creator := range creators {
    profiles[i] = Handle(creator.Username)
  }
  return &ProfileInput{
    ProfileScrapeSections: []string{"videos"},
    ProfileSorting:        "latest",
    Profiles:              profiles,
    ProxyCountryCode:      "None",
    ResultsPerPage:        config.SYNC_RESULTS_PER_PAGE,
  }
}

// Handle renders a username as a single "@"-prefixed profile handle.
func Handle(username string) string {
  for len(username) > 0 && username[0] == '@' {
    username = username[1:]
  }
  return "@" + username
}

func (s *TikTokScraper) RunTikTokScraper(ctx context.Context, creators []*models.Creator) ([]gjson.Result, error) {
  input := NewProfileInput(creators)
  log.Info().Strs("profiles", input.Profiles).Str("task_id", s.TaskID).Msg("running tiktok scraper")

  run, err := s.Client.StartTaskRun(ctx, s.TaskID, map[string]interface{}{
    "input":         input,
    "waitForFinish": config.APIFY_WAIT_FOR_FINISH,
  })
  if err != nil {
    return nil, fmt.Errorf("failed to start task: %w", err)
  }

  switch run.Status {
  case RunStatusSucceeded:
  case RunStatusFailed, RunStatusAborted:
    return nil, fmt.Errorf("%w with status: %v", ErrRunFailed, run.Status)
  default:
    run, err = s.Client.WaitForRun(ctx, run.ID, config.APIFY_TASK_MAX_ATTEMPTS)
    if err != nil {
      return nil, err
    }
  }

  items, err := s.Client.DatasetItems(ctx, run.DefaultDatasetID)
  if err != nil {
    return nil, err
  }
  log.Info().Str("run_id", run.ID).Int("items", len(items)).Msg("fetched dataset items")
  return items, nil
}
