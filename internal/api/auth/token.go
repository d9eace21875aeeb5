package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reviewhub/internal/api/models"
	"reviewhub/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carried by an access token. The role travels in the token so
// catalog writes do not need a user lookup on every request.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a shared HS256 key.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
	}
}

func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Superuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies the signature and expiry and returns the typed claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ActorFromClaims converts verified claims into the request identity.
func ActorFromClaims(claims *Claims) Actor {
	return Actor{
		ID:        claims.UserID,
		Username:  claims.Username,
		Role:      models.Role(claims.Role),
		Superuser: claims.Superuser,
	}
}
