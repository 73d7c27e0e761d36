// Package auth issues and verifies farm access tokens.
//
// A token is an HS256 JWT naming one farm. The HTTP API accepts it as a
// bearer token, or as the access_token query parameter for websocket clients
// that cannot set headers.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMissing = errors.New("access token is required")
	ErrTokenInvalid = errors.New("access token is invalid")
	ErrTokenExpired = errors.New("access token is expired")
)

// Config holds the signing key and claim expectations
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Claims are the validated contents of a token
type Claims struct {
	FarmID    int
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type farmClaims struct {
	jwt.RegisteredClaims
	FarmID int `json:"farm_id"`
}

// Issue signs a token for farmID valid for cfg.TTL
func Issue(cfg Config, farmID int) (string, Claims, error) {
	if len(cfg.Secret) == 0 {
		return "", Claims{}, errors.New("token secret is not configured")
	}
	if farmID <= 0 {
		return "", Claims{}, fmt.Errorf("invalid farm id %d", farmID)
	}

	now := cfg.now().UTC().Truncate(time.Second)
	claims := farmClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   fmt.Sprintf("farm:%d", farmID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
		FarmID: farmID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, Claims{
		FarmID:    farmID,
		TokenID:   claims.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(cfg.TTL),
	}, nil
}

// Verify checks the signature, issuer and expiry of token
func Verify(cfg Config, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrTokenMissing
	}

	var parsed farmClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if parsed.FarmID <= 0 {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{
		FarmID:    parsed.FarmID,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// FromRequest extracts the raw token from the Authorization header or the
// access_token query parameter
func FromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return token
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}
