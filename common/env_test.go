package common

import (
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
  d, err := ParseDuration("7d")
  require.NoError(t, err)
  assert.Equal(t, 7*24*time.Hour, d)

  d, err = ParseDuration("90m")
  require.NoError(t, err)
  assert.Equal(t, 90*time.Minute, d)

  _, err = ParseDuration("xd")
  assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
  t.Setenv("TRACKER_TEST_INT", " 12 ")
  t.Setenv("TRACKER_TEST_BAD_INT", "abc")
  t.Setenv("TRACKER_TEST_BOOL", "true")
  t.Setenv("TRACKER_TEST_ARRAY", "tiktok.sync,10; default,1;")
  t.Setenv("TRACKER_TEST_DURATION", "2s")
  t.Setenv("TRACKER_TEST_EMPTY", "")

  assert.Equal(t, 12, GetEnvInt("TRACKER_TEST_INT"))
  assert.Equal(t, 5, GetEnvIntOr("TRACKER_TEST_BAD_INT", 5))
  assert.True(t, GetEnvBool("TRACKER_TEST_BOOL"))
  assert.Equal(t, []string{"tiktok.sync,10", "default,1"}, GetEnvArray("TRACKER_TEST_ARRAY"))
  assert.Equal(t, 2*time.Second, GetEnvDuration("TRACKER_TEST_DURATION", time.Minute))
  assert.Equal(t, time.Minute, GetEnvDuration("TRACKER_TEST_EMPTY", time.Minute))
  assert.Equal(t, "fallback", GetEnvStringOr("TRACKER_TEST_EMPTY", "fallback"))
}

func TestPassword(t *testing.T) {
  hash, err := GeneratePassword("password")
  require.NoError(t, err)
  assert.NotEqual(t, "password", hash)
  assert.True(t, VerifyPassword("password", hash))
  assert.False(t, VerifyPassword("wrong", hash))
}
