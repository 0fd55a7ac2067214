package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mpdash/internal/common"
	"github.com/dmitrijs2005/mpdash/internal/server/auth"
	"github.com/dmitrijs2005/mpdash/internal/server/config"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	db, m := openDB(t)
	return NewUserService(db, m, &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour})
}

func TestSignupAndLogin(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice@example.com", "alice", "pw")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, []byte("pw"), u.PasswordHash)

	tok, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, u.ID, tok.UserID)

	id, err := auth.GetUserIDFromToken(tok.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	id, err = s.UserIDFromToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	byEmail, err := s.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.UserID)

	got, err := s.User(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestSignup_Duplicate(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "alice@example.com", "alice", "pw")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "other@example.com", "alice", "pw")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSignup_Validation(t *testing.T) {
	s := newUserService(t)

	_, err := s.Signup(context.Background(), "", "alice", " ")
	require.ErrorIs(t, err, common.ErrorValidation)

	var v ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, ValidationError{
		{Field: "email", Msg: "field required"},
		{Field: "password", Msg: "field required"},
	}, v)

	_, err = s.Signup(context.Background(), "a@x", "alice", strings.Repeat("p", 100))
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "password", v[0].Field)
}

func TestLogin_IncorrectCredentials(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "alice@example.com", "alice", "pw")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "bad")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	db, m := openDB(t)
	s := NewUserService(db, m, &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour})
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice@example.com", "alice", "pw")
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, u.ID)
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "pw")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUser_NotFound(t *testing.T) {
	s := newUserService(t)

	_, err := s.User(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DBErrors(t *testing.T) {
	db, _ := openDB(t)
	s := NewUserService(db, newBrokenManager(t), &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour})
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x", "a", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)

	_, err = s.Login(ctx, "a", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncorrectCredentials)

	_, err = s.User(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
