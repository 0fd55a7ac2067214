// Package models defines the client-side data models exchanged with the
// mpdash backend.
package models

// User is the account record returned by the backend. It is replaced
// wholesale on every fetch and never patched locally.
type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
	Balance     float64 `json:"balance"`
}

// Credentials is the login input.
type Credentials struct {
	Username string
	Password string
}

// SignupData is the signup input.
type SignupData struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccessToken is the login response. UserID is filled by backends that
// return the identifier directly; older backends leave it zero.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id,omitempty"`
}
