package v1

import (
  "net/http"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestPostStats(t *testing.T) {
  apiContext := newTestContext(t)
  kat := seedCreator(t, apiContext, "kat.picks")
  id := seedPost(t, apiContext, kat, testNow.AddDate(0, 0, -1), 100)
  router := NewRouter(apiContext)
  path := "/api/posts/" + id + "/stats"

  t.Run("get before edit", func(t *testing.T) {
    w := request(t, router, http.MethodGet, path, "", nil)
    require.Equal(t, http.StatusOK, w.Code)
    data := decode(t, w)
    assert.Equal(t, false, data["hasOriginalStats"])
    assert.Nil(t, data["originalStats"])
    assert.Equal(t, float64(100), data["stats"].(map[string]interface{})["views"])
  })

  t.Run("rejects non numbers", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":"a lot","likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Invalid input: all values must be numbers", decode(t, w)["error"])
  })

  t.Run("rejects missing values", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Invalid input: all values must be numbers", decode(t, w)["error"])
  })

  t.Run("rejects negatives", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":-1,"likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Invalid input: values cannot be negative", decode(t, w)["error"])
  })

  t.Run("rejects out of range", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":1e300,"likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Invalid input: values are too large", decode(t, w)["error"])

    w = request(t, router, http.MethodPut, path, `{"views":9223372036854775808,"likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
  })

  t.Run("rejects fractions", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":1.5,"likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)
    assert.Equal(t, "Invalid input: values must be whole numbers", decode(t, w)["error"])

    w = request(t, router, http.MethodGet, path, "", nil)
    require.Equal(t, http.StatusOK, w.Code)
    data := decode(t, w)
    assert.Equal(t, false, data["hasOriginalStats"])
    assert.Equal(t, float64(100), data["stats"].(map[string]interface{})["views"])
  })

  t.Run("unknown post", func(t *testing.T) {
    w := request(t, router, http.MethodPut, "/api/posts/missing/stats", `{"views":1,"likes":1,"comments":1,"shares":1}`, nil)
    assert.Equal(t, http.StatusNotFound, w.Code)
    assert.Equal(t, "Post not found", decode(t, w)["error"])
  })

  t.Run("undo without original", func(t *testing.T) {
    w := request(t, router, http.MethodPost, path, `{"action":"undo"}`, nil)
    assert.Equal(t, http.StatusNotFound, w.Code)
    assert.Equal(t, "No original stats found to undo to", decode(t, w)["error"])
  })

  t.Run("edit", func(t *testing.T) {
    w := request(t, router, http.MethodPut, path, `{"views":5000,"likes":500,"comments":50,"shares":5}`, nil)
    require.Equal(t, http.StatusOK, w.Code)
    data := decode(t, w)
    assert.Equal(t, "Stats updated successfully", data["message"])
    assert.Equal(t, float64(100), data["originalStats"].(map[string]interface{})["views"])
    assert.Equal(t, float64(5000), data["newStats"].(map[string]interface{})["views"])

    w = request(t, router, http.MethodGet, path, "", nil)
    data = decode(t, w)
    assert.Equal(t, true, data["hasOriginalStats"])
    assert.Equal(t, float64(5000), data["stats"].(map[string]interface{})["views"])
    assert.Equal(t, float64(100), data["originalStats"].(map[string]interface{})["views"])
  })

  t.Run("undo", func(t *testing.T) {
    w := request(t, router, http.MethodPost, path, `{"action":"undo"}`, nil)
    require.Equal(t, http.StatusOK, w.Code)
    data := decode(t, w)
    assert.Equal(t, "Stats restored to original values", data["message"])
    assert.Equal(t, float64(100), data["restoredStats"].(map[string]interface{})["views"])

    w = request(t, router, http.MethodGet, path, "", nil)
    assert.Equal(t, float64(100), decode(t, w)["stats"].(map[string]interface{})["views"])
  })

  t.Run("other action", func(t *testing.T) {
    w := request(t, router, http.MethodPost, path, `{"action":"redo"}`, nil)
    assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
  })

  t.Run("delete not allowed", func(t *testing.T) {
    w := request(t, router, http.MethodDelete, path, "", nil)
    assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
  })
}
