// Package common contains shared constants and sentinel errors used across
// mpdash components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the authorization scheme prefix, followed by a single space.
	BearerScheme = "Bearer"

	// RequestIDHeaderName carries a per-request identifier, client generated.
	RequestIDHeaderName = "X-Request-ID"

	// TokenType is the token_type value returned by the login endpoint.
	TokenType = "bearer"
)
