package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime applies when no lifetime is configured.
const DefaultTokenLifetime = 24 * time.Hour

// JWTTokenGenerator issues and verifies HMAC-SHA256 session tokens. The
// secret and clock are injected at construction so tests can pin both;
// nothing here reads ambient state.
type JWTTokenGenerator struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewJWTTokenGenerator(secret string, lifetime time.Duration) *JWTTokenGenerator {
	return NewJWTTokenGeneratorWithClock(secret, lifetime, time.Now)
}

func NewJWTTokenGeneratorWithClock(secret string, lifetime time.Duration, now func() time.Time) *JWTTokenGenerator {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	if now == nil {
		now = time.Now
	}
	return &JWTTokenGenerator{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      now,
	}
}

// Issue mints a signed token carrying the identity id and username.
// Expiry is issued-at plus the configured lifetime.
func (j *JWTTokenGenerator) Issue(identityID, username string) (string, error) {
	issuedAt := j.now()

	claims := &Claims{
		IdentityID: identityID,
		Username:   username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.lifetime)),
			Subject:   identityID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the claims. Expired
// tokens surface as ErrTokenExpired, everything else wrong with the token
// as ErrInvalidToken; callers fold both into one user-visible failure.
func (j *JWTTokenGenerator) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
