package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mpdash/internal/client/models"
	"github.com/dmitrijs2005/mpdash/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and hands them to the session controller.
// On failure the message the controller stored is shown.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	err = a.session.Login(ctx, models.Credentials{Username: username, Password: password})
	a.reportSessionError(err)
	a.flush(ctx)
	return err
}

// Signup prompts for the new account and logs in with it.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	err = a.session.Signup(ctx, models.SignupData{Email: email, Username: username, Password: password})
	a.reportSessionError(err)
	a.flush(ctx)
	return err
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.flush(ctx)
	return nil
}

func (a *App) reportSessionError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrSuperseded):
		fmt.Fprintln(a.out, "Cancelled.")
	default:
		fmt.Fprintln(a.out, "Error:", a.session.State().Err)
	}
}

// Ping checks that the backend answers its health probe.
func (a *App) Ping(ctx context.Context) error {
	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Backend unavailable:", err)
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Backend is up.")
	return nil
}

// Status prints the session state and the current location.
func (a *App) Status(_ context.Context) error {
	st := a.session.State()
	loc := a.Location()

	fmt.Fprintf(a.out, "Session:  %s\n", st.Status())
	if st.User != nil {
		fmt.Fprintf(a.out, "User:     %s (id %d)\n", st.User.Username, st.User.ID)
	}
	if st.Err != "" {
		fmt.Fprintf(a.out, "Error:    %s\n", st.Err)
	}
	fmt.Fprintf(a.out, "Location: %s\n", loc.Route.Path)
	if a.baseURL != "" {
		fmt.Fprintf(a.out, "Backend:  %s\n", a.baseURL)
	}
	if m := a.getMode(); m != ModeUnknown {
		fmt.Fprintf(a.out, "Mode:     %s\n", m)
	}
	return nil
}
