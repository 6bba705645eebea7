package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

const (
	// CookieName is the session cookie carrying the signed token.
	CookieName = "token"

	// TokenTTL is the fixed validity window of an issued session token.
	TokenTTL = 6 * time.Hour

	EnvProduction = "production"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoAuth       = errors.New("no authenticated user in context")
)

type Config struct {
	Secret      string `envconfig:"JWT_SECRET" required:"true" json:"-"`
	Environment string `envconfig:"APP_ENV" default:"development"`
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for the given identity.
func IssueToken(email, name string, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the decoded claims.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type contextKey int

const emailKey contextKey = iota + 1

func SetAuthContext(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func EmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(emailKey).(string)
	if !ok || email == "" {
		return "", ErrNoAuth
	}
	return email, nil
}
