package api

import (
	"net/http"
	"strings"

	"github.com/hashedin27-max/GCS-Upload/internal/common"
)

// TokenSource yields the credential to attach to outgoing requests, or ""
// when the client is anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// AuthTransport decorates an http.RoundTripper with the session pipeline:
//
//   - a present credential is attached as a bearer authorization header on
//     every request except to the auth endpoints themselves;
//   - a 401 on any non-login endpoint means the credential is invalid: the
//     session is cleared via OnUnauthorized and the caller is sent to login;
//   - a 403 means the user lacks permission: navigation only, the session
//     survives.
//
// Responses are otherwise passed through untouched.
type AuthTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource

	// OnUnauthorized performs the forced local logout plus login navigation.
	OnUnauthorized func()
	// OnForbidden performs the login navigation without clearing the session.
	OnForbidden func()
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// isAuthEndpoint reports whether the path belongs to the authentication
// surface; those requests are always sent unauthenticated.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/login") || strings.Contains(path, "/refresh")
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.Tokens.Token(); tok != "" && !isAuthEndpoint(req.URL.Path) {
		req = req.Clone(req.Context())
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if !strings.Contains(req.URL.Path, "/login") && t.OnUnauthorized != nil {
			t.OnUnauthorized()
		}
	case http.StatusForbidden:
		if t.OnForbidden != nil {
			t.OnForbidden()
		}
	}
	return resp, nil
}
