// Package models holds the records stored by the development backend.
package models

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           int64   `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	Username     string  `db:"username" json:"username"`
	PasswordHash []byte  `db:"password_hash" json:"-"`
	IsActive     bool    `db:"is_active" json:"is_active"`
	IsSuperuser  bool    `db:"is_superuser" json:"is_superuser"`
	Balance      float64 `db:"balance" json:"balance"`
}
