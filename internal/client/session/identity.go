package session

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/mpdash/internal/client/models"
)

// IdentityResolver derives the user identifier for a fresh login.
//
// The identifier returned by the backend in the login response wins.
// Otherwise the token's "sub" claim is read: with a shared secret the
// signature is verified (HS256), without one the claims are read as is.
type IdentityResolver struct {
	secret []byte
}

func NewIdentityResolver(secret string) *IdentityResolver {
	r := &IdentityResolver{}
	if secret != "" {
		r.secret = []byte(secret)
	}
	return r
}

// Verifies reports whether tokens are checked against a secret.
func (r *IdentityResolver) Verifies() bool {
	return len(r.secret) > 0
}

func (r *IdentityResolver) UserID(tok models.AccessToken) (int64, error) {
	if tok.UserID > 0 {
		return tok.UserID, nil
	}
	return r.Subject(tok.AccessToken)
}

// Subject returns the numeric subject of a token. Both JSON numbers and
// decimal strings are accepted.
func (r *IdentityResolver) Subject(raw string) (int64, error) {
	claims := jwt.MapClaims{}

	if r.Verifies() {
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return r.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrTokenParse, err)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenParse, err)
	}

	switch sub := claims["sub"].(type) {
	case float64:
		if sub <= 0 || sub != math.Trunc(sub) || sub >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: subject %v is not an identifier", ErrTokenParse, sub)
		}
		return int64(sub), nil
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%w: subject %q is not an identifier", ErrTokenParse, sub)
		}
		return id, nil
	case nil:
		return 0, fmt.Errorf("%w: no subject claim", ErrTokenParse)
	default:
		return 0, fmt.Errorf("%w: subject of type %T", ErrTokenParse, sub)
	}
}
