package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by tokens issued by the mock backend.
// It extends the registered claims with the username and role the login
// response also reports.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Mint signs an HS256 token for the given subject, valid for ttl from now.
// Used by the mock backend and by tests; production tokens come from the
// real backend.
func Mint(subject, username, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
		Role:     role,
	})
	return t.SignedString(secret)
}
