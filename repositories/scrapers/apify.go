package scrapers

import (
  "bytes"
  "context"
  "errors"
  "fmt"
  "io"
  "net"
  "net/http"
  "strings"
  "time"

  "github.com/goccy/go-json"
  "github.com/rs/zerolog/log"
  gobreaker "github.com/sony/gobreaker/v2"
  "github.com/tidwall/gjson"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/metrics"
)

const (
  RunStatusSucceeded = "SUCCEEDED"
  RunStatusFailed    = "FAILED"
  RunStatusAborted   = "ABORTED"
)

type Run struct {
  ID               string
  Status           string
  DefaultDatasetID string
}

type ApifyClient struct {
  BaseURL      string
  Token        string
  PollInterval time.Duration
  HttpClient   *http.Client
  breaker      *gobreaker.CircuitBreaker[*response]
}

type response struct {
  status int
  body   []byte
}

func NewApifyClient() *ApifyClient {
  tr := &http.Transport{
    DisableKeepAlives: true,
  }
  if proxy := common.GetEnvString("APIFY_PROXY"); proxy != "" {
    tr.DialContext = (&common.ProxySession{
      Proxy: proxy,
    }).DialContext
  } else {
    tr.DialContext = (&net.Dialer{}).DialContext
  }
  return NewApifyClientWith(
    common.GetEnvStringOr("APIFY_BASE_URL", config.APIFY_BASE_URL),
    common.GetEnvString("APIFY_TOKEN"),
    &http.Client{
      Transport: tr,
      Timeout:   time.Duration(60) * time.Second,
    },
  )
}

func NewApifyClientWith(baseURL string, token string, httpClient *http.Client) *ApifyClient {
  name := "apify-api"
  metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
  return &ApifyClient{
    BaseURL:      strings.TrimRight(baseURL, "/"),
    Token:        token,
    PollInterval: config.APIFY_POLL_INTERVAL,
    HttpClient:   httpClient,
    breaker: gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
      Name:        name,
      MaxRequests: 3,
      Interval:    time.Minute,
      Timeout:     2 * time.Minute,
      ReadyToTrip: func(counts gobreaker.Counts) bool {
        return counts.ConsecutiveFailures >= 5
      },
      OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
        log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
        metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
      },
    }),
  }
}

func (c *ApifyClient) StartTaskRun(ctx context.Context, taskID string, payload interface{}) (*Run, error) {
  return c.start(ctx, "start_task", fmt.Sprintf("/actor-tasks/%v/runs", taskID), payload)
}

func (c *ApifyClient) StartActorRun(ctx context.Context, actorID string, payload interface{}) (*Run, error) {
  return c.start(ctx, "start_actor", fmt.Sprintf("/acts/%v/runs", actorID), payload)
}

func (c *ApifyClient) GetRun(ctx context.Context, runID string) (*Run, error) {
  resp, err := c.do(ctx, "get_run", http.MethodGet, fmt.Sprintf("/actor-runs/%v", runID), nil)
  if err != nil {
    return nil, err
  }
  if resp.status != http.StatusOK {
    return nil, fmt.Errorf("failed to check run status: %w", apiError(resp))
  }
  return parseRun(resp.body), nil
}

// WaitForRun polls the run every PollInterval until it finishes or maxAttempts polls went by.
func (c *ApifyClient) WaitForRun(ctx context.Context, runID string, maxAttempts int) (*Run, error) {
  for attempt := 0; attempt < maxAttempts; attempt++ {
    select {
    case <-ctx.Done():
      return nil, ctx.Err()
    case <-time.After(c.PollInterval):
    }

    run, err := c.GetRun(ctx, runID)
    if err != nil {
      return nil, err
    }
    log.Debug().Str("run_id", runID).Str("status", run.Status).Int("attempt", attempt+1).Msg("apify run status")

    switch run.Status {
    case RunStatusSucceeded:
      return run, nil
    case RunStatusFailed, RunStatusAborted:
      return nil, fmt.Errorf("%w with status: %v", ErrRunFailed, run.Status)
    }
  }
  return nil, ErrRunTimeout
}

func (c *ApifyClient) DatasetItems(ctx context.Context, datasetID string) ([]gjson.Result, error) {
  resp, err := c.do(ctx, "dataset_items", http.MethodGet, fmt.Sprintf("/datasets/%v/items", datasetID), nil)
  if err != nil {
    return nil, err
  }
  if resp.status != http.StatusOK {
    return nil, fmt.Errorf("failed to fetch dataset items: %w", apiError(resp))
  }
  result := gjson.ParseBytes(resp.body)
  if !result.IsArray() {
    return nil, errors.New("dataset items are not a json array")
  }
  return result.Array(), nil
}

func (c *ApifyClient) start(ctx context.Context, operation string, path string, payload interface{}) (*Run, error) {
  body, err := json.Marshal(payload)
  if err != nil {
    return nil, err
  }
  resp, err := c.do(ctx, operation, http.MethodPost, path, body)
  if err != nil {
    return nil, err
  }
  if resp.status < 200 || resp.status >= 300 {
    return nil, apiError(resp)
  }
  run := parseRun(resp.body)
  if run.ID == "" {
    return nil, ErrNoRunID
  }
  log.Info().Str("run_id", run.ID).Str("status", run.Status).Str("path", path).Msg("apify run started")
  return run, nil
}

func (c *ApifyClient) do(
  ctx context.Context,
  operation string,
  method string,
  path string,
  body []byte,
) (*response, error) {
  if c.Token == "" {
    return nil, ErrMissingToken
  }

  started := time.Now()
  resp, err := c.breaker.Execute(func() (*response, error) {
    var reader io.Reader
    if body != nil {
      reader = bytes.NewReader(body)
    }
    req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
    if err != nil {
      return nil, err
    }
    req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.Token))
    if body != nil {
      req.Header.Set("Content-Type", "application/json")
    }

    res, err := c.HttpClient.Do(req)
    if err != nil {
      return nil, err
    }
    defer res.Body.Close()

    data, err := io.ReadAll(res.Body)
    if err != nil {
      return nil, err
    }
    out := &response{status: res.StatusCode, body: data}
    if res.StatusCode >= 500 {
      return out, apiError(out)
    }
    return out, nil
  })

  status := "error"
  if resp != nil {
    status = fmt.Sprintf("%d", resp.status)
  }
  metrics.ApifyRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())

  if err != nil {
    return nil, err
  }
  return resp, nil
}

func parseRun(body []byte) *Run {
  data := gjson.ParseBytes(body)
  id := data.Get("data.id").String()
  if id == "" {
    id = data.Get("id").String()
  }
  if id == "" {
    id = data.Get("data.runId").String()
  }
  return &Run{
    ID:               id,
    Status:           data.Get("data.status").String(),
    DefaultDatasetID: data.Get("data.defaultDatasetId").String(),
  }
}

func apiError(resp *response) *APIError {
  data := gjson.ParseBytes(resp.body)
  errType := data.Get("error.type").String()
  if errType == "" {
    errType = data.Get("type").String()
  }
  message := data.Get("error.message").String()
  if message == "" {
    message = data.Get("message").String()
  }
  if message == "" {
    message = strings.TrimSpace(string(resp.body))
  }
  return &APIError{
    Status:  resp.status,
    Type:    errType,
    Message: message,
  }
}
