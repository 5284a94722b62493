package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashedin27-max/GCS-Upload/internal/common"
)

var secret = []byte("test-secret")

func TestDecodeExpiry_Success(t *testing.T) {
	t.Parallel()

	tok, err := Mint("1", "admin", "administrator", secret, time.Hour)
	require.NoError(t, err)

	exp, err := DecodeExpiry(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestDecodeExpiry_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b", "a.b.c.d"} {
		_, err := DecodeExpiry(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}

func TestDecodeExpiry_MissingExpClaim(t *testing.T) {
	t.Parallel()

	// Header/claims segments are valid base64-JSON but there is no exp claim.
	tok := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxIn0.c2ln"
	_, err := DecodeExpiry(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSubject(t *testing.T) {
	t.Parallel()

	tok, err := Mint("1", "admin", "administrator", secret, time.Hour)
	require.NoError(t, err)

	sub, err := Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "1", sub)
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	valid, err := Mint("1", "u", "", secret, time.Hour)
	require.NoError(t, err)
	expired, err := Mint("1", "u", "", secret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		now   time.Time
		want  bool
	}{
		{"unexpired", valid, now, false},
		{"expired", expired, now, true},
		{"exactly at expiry", valid, now.Add(time.Hour + time.Second), true},
		{"malformed treated as expired", "not.a.jwt", now, true},
		{"empty treated as expired", "", now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpired(tt.token, tt.now))
		})
	}
}
