package common

const (
	// AuthorizationHeader carries the credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the raw token in the authorization header.
	BearerPrefix = "Bearer "
)
