package jwt

import (
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "tracker.local/tiktok-dashboard/models"
)

func TestToken(t *testing.T) {
  now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
  user := &models.User{
    ID:        "u1",
    Email:     "demo@example.com",
    FirstName: "John",
    LastName:  "Doe",
  }
  tokens := &TokenRepository{
    Secret:  []byte("secret"),
    Expires: time.Hour,
    Clock: func() time.Time {
      return now
    },
  }

  token, err := tokens.Generate(user)
  require.NoError(t, err)

  t.Run("verify", func(t *testing.T) {
    claims, err := tokens.Verify(token)
    require.NoError(t, err)
    assert.Equal(t, "u1", claims.UserID)
    assert.Equal(t, "demo@example.com", claims.Email)
    assert.Equal(t, "John", claims.FirstName)
    assert.Equal(t, "u1", claims.Subject)
  })

  t.Run("expired", func(t *testing.T) {
    later := &TokenRepository{
      Secret: tokens.Secret,
      Clock: func() time.Time {
        return now.Add(2 * time.Hour)
      },
    }
    _, err := later.Verify(token)
    assert.ErrorIs(t, err, ErrInvalidToken)
  })

  t.Run("wrong secret", func(t *testing.T) {
    other := &TokenRepository{Secret: []byte("other"), Clock: tokens.Clock}
    _, err := other.Verify(token)
    assert.ErrorIs(t, err, ErrInvalidToken)
  })

  t.Run("garbage", func(t *testing.T) {
    _, err := tokens.Verify("not-a-token")
    assert.ErrorIs(t, err, ErrInvalidToken)
  })
}

func TestNewTokenRepository(t *testing.T) {
  t.Setenv("JWT_SECRET", "from-env")
  t.Setenv("JWT_EXPIRES_IN", "2h")
  tokens := NewTokenRepository()
  assert.Equal(t, []byte("from-env"), tokens.Secret)
  assert.Equal(t, 2*time.Hour, tokens.Expires)
}
