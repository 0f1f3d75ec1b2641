package scrapers

import (
  "errors"
  "fmt"
)

var (
  ErrMissingToken = errors.New("APIFY_TOKEN not found in environment variables")
  ErrRunFailed    = errors.New("run failed")
  ErrRunTimeout   = errors.New("run timed out")
  ErrNoRunID      = errors.New("run started but no runId in response")
)

// APIError is a non-2xx answer of the Apify API.
type APIError struct {
  Status  int
  Type    string
  Message string
}

func (e *APIError) Error() string {
  if e.Type != "" {
    return fmt.Sprintf("apify api error: status[%d] type[%s] %s", e.Status, e.Type, e.Message)
  }
  return fmt.Sprintf("apify api error: status[%d] %s", e.Status, e.Message)
}

func (e *APIError) IsNotFound() bool {
  return e.Status == 404 && e.Type == "record-not-found"
}
