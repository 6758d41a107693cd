package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL returns how long token stays valid. Tokens that are not JWTs, or
// carry no exp claim, get fallback. The signature is not checked; the
// backend owns the key.
func TokenTTL(token string, fallback time.Duration, now time.Time) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Sub(now)
}
