package session

import "github.com/dmitrijs2005/mpdash/internal/client/models"

type Status int

const (
	StatusUnauthenticated Status = iota
	StatusLoading
	StatusAuthenticated
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	default:
		return "unauthenticated"
	}
}

// State is a snapshot of the session. User is never mutated in place;
// each fetch replaces it.
type State struct {
	User    *models.User
	Loading bool
	Err     string
}

// Authenticated is true iff a user is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Status folds the fields into one of the four session states. Loading
// takes precedence, then an authenticated user, then an error.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.User != nil:
		return StatusAuthenticated
	case s.Err != "":
		return StatusError
	default:
		return StatusUnauthenticated
	}
}
