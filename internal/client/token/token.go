// Package token decodes the claims the client needs from an opaque bearer
// credential. The client never verifies signatures, that is the backend's
// job; it only reads the expiry and subject claims to drive local session
// decisions. Any token that cannot be decoded is treated as expired.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hashedin27-max/GCS-Upload/internal/common"
)

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// DecodeExpiry extracts the expiry instant from the token's claims segment.
// Returns common.ErrInvalidToken if the token does not have the expected
// structure or lacks a decodable expiry claim.
func DecodeExpiry(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, common.ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, common.ErrInvalidToken
	}
	return exp.Time, nil
}

// Subject extracts the subject identifier from the token's claims segment.
func Subject(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", common.ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", common.ErrInvalidToken
	}
	return sub, nil
}

// IsExpired reports whether the token's claimed expiry is at or before now.
// Undecodable tokens count as expired: the session layer must fail closed,
// never open.
func IsExpired(tokenString string, now time.Time) bool {
	exp, err := DecodeExpiry(tokenString)
	if err != nil {
		return true
	}
	return !exp.After(now)
}
