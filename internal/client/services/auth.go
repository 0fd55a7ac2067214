package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/mpdash/internal/client/models"
)

const (
	loginPath  = "/auth/login/access-token"
	signupPath = "/auth/signup"
	mePath     = "/users/me"
	healthPath = "/health"
)

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login: exchange credentials for an access token.
//   - Signup: create an account; the caller logs in separately.
//   - CurrentUser: fetch the user record for an identifier.
//   - Ping: check backend liveness.
//
// Backend failures surface as *api.Error unchanged.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AccessToken, error)
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	transport Transport
}

// NewAuthService constructs an AuthService over the given transport.
func NewAuthService(t Transport) AuthService {
	return &authService{transport: t}
}

// Login posts the credentials form-encoded, the way OAuth2 password
// flows expect them.
func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.AccessToken, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	var tok models.AccessToken
	if err := s.transport.PostForm(ctx, loginPath, form, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login: %w", ErrEmptyToken)
	}
	return &tok, nil
}

func (s *authService) Signup(ctx context.Context, data models.SignupData) (*models.User, error) {
	var u models.User
	if err := s.transport.PostJSON(ctx, signupPath, data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	var u models.User
	if err := s.transport.GetJSON(ctx, mePath, q, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *authService) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := s.transport.GetJSON(ctx, healthPath, nil, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("health: status %q", status.Status)
	}
	return nil
}
