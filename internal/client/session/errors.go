package session

import "errors"

var (
	// ErrSuperseded is returned by an operation whose result was discarded
	// because a newer operation (for example a logout) started meanwhile.
	ErrSuperseded = errors.New("session operation superseded")
	// ErrTokenParse marks an access token whose subject cannot be read.
	ErrTokenParse = errors.New("cannot parse session token")
)

// Messages shown when the backend gives no detail of its own.
const (
	DefaultLoginError  = "Login failed"
	DefaultSignupError = "Signup failed"
)
