package jwt

import (
  "errors"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"

  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/config"
  "tracker.local/tiktok-dashboard/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
  UserID    string `json:"userId"`
  Email     string `json:"email"`
  FirstName string `json:"firstName"`
  LastName  string `json:"lastName"`
  AvatarUrl string `json:"avatarUrl"`
  jwt.RegisteredClaims
}

type TokenRepository struct {
  Secret  []byte
  Expires time.Duration
  Clock   func() time.Time
}

func NewTokenRepository() *TokenRepository {
  expires, err := common.ParseDuration(common.GetEnvStringOr("JWT_EXPIRES_IN", config.JWT_DEFAULT_EXPIRES))
  if err != nil {
    expires = 7 * 24 * time.Hour
  }
  return &TokenRepository{
    Secret:  []byte(common.GetEnvStringOr("JWT_SECRET", config.JWT_DEFAULT_SECRET)),
    Expires: expires,
  }
}

func (r *TokenRepository) now() time.Time {
  if r.Clock != nil {
    return r.Clock()
  }
  return time.Now()
}

func (r *TokenRepository) Generate(user *models.User) (string, error) {
  now := r.now()
  claims := &Claims{
    UserID:    user.ID,
    Email:     user.Email,
    FirstName: user.FirstName,
    LastName:  user.LastName,
    AvatarUrl: user.AvatarUrl,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID,
      IssuedAt:  jwt.NewNumericDate(now),
      ExpiresAt: jwt.NewNumericDate(now.Add(r.Expires)),
    },
  }
  return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.Secret)
}

func (r *TokenRepository) Verify(tokenString string) (*Claims, error) {
  claims := &Claims{}
  token, err := jwt.ParseWithClaims(
    tokenString,
    claims,
    func(token *jwt.Token) (interface{}, error) {
      if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
        return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
      }
      return r.Secret, nil
    },
    jwt.WithTimeFunc(r.now),
  )
  if err != nil || !token.Valid {
    return nil, ErrInvalidToken
  }
  return claims, nil
}
