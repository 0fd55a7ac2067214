// Package tokenstore persists the session token and the user identifier
// that belongs to it. Both values are always written and cleared together.
package tokenstore

import (
	"context"
	"errors"
)

const (
	KeyToken  = "token"
	KeyUserID = "user_id"
)

// ErrMalformed is returned by Load when the stored identifier cannot be
// parsed back into a number.
var ErrMalformed = errors.New("malformed stored session")

// Token is a persisted session credential.
type Token struct {
	Value  string
	UserID int64
}

// Store is the durable home of the session credential. There is no expiry
// enforcement: a stale token stays until Clear is called.
type Store interface {
	Save(ctx context.Context, token string, userID int64) error
	// Load returns ok=false when nothing (or only half of a pair) is stored.
	Load(ctx context.Context) (tok Token, ok bool, err error)
	Clear(ctx context.Context) error
}
